// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	"ideamatch/internal/domain/entity"
	domainerrors "ideamatch/internal/domain/errors"
	"ideamatch/internal/domain/repository"
	"ideamatch/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountCredentialColumns are the columns Update always writes, so that nil
// pointers on the entity persist as NULL and extinguish the stored secret.
var accountCredentialColumns = []string{
	"email", "full_name", "role", "provider", "password_hash",
	"email_verified", "is_active", "is_onboarded",
	"otp_hash", "otp_expires_at",
	"refresh_token_hash",
	"reset_token_hash", "reset_token_expires_at",
	"updated_at",
}

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error

	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its email address.
// The lookup is case-insensitive; emails are stored lowercased.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account to the database.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	// Map the pure domain entity to a GORM persistence model.
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailConflict
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the account entity with the generated ID and timestamps
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update persists the account's mutable fields. The credential-state columns
// are always written so clearing an OTP, refresh token or reset token on the
// entity clears the row as well.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Select(accountCredentialColumns).
		Updates(accountM).Error

	if err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailConflict
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	return nil
}

// List retrieves accounts matching the given filter, newest first.
func (repo *accountRepository) List(ctx context.Context, filter repository.AccountFilter) ([]*entity.Account, error) {
	query := repo.db.WithContext(ctx).Model(&model.AccountModel{})
	if filter.Role != nil {
		query = query.Where("role = ?", filter.Role.String())
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var accountMs []*model.AccountModel
	if err := query.Order("created_at DESC").Find(&accountMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountMs))
	for _, accountM := range accountMs {
		accounts = append(accounts, toAccountDomain(accountM))
	}

	return accounts, nil
}

// Delete removes an account permanently.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AccountModel{})

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("account still owns marketplace records")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:                  data.ID,
		Email:               data.Email,
		FullName:            data.FullName,
		Role:                entity.Role(data.Role),
		Provider:            entity.AuthProvider(data.Provider),
		PasswordHash:        data.PasswordHash,
		EmailVerified:       data.EmailVerified,
		IsActive:            data.IsActive,
		IsOnboarded:         data.IsOnboarded,
		OTPHash:             data.OTPHash,
		OTPExpiresAt:        data.OTPExpiresAt,
		RefreshTokenHash:    data.RefreshTokenHash,
		ResetTokenHash:      data.ResetTokenHash,
		ResetTokenExpiresAt: data.ResetTokenExpiresAt,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:                  data.ID,
		Email:               strings.ToLower(data.Email),
		FullName:            data.FullName,
		Role:                data.Role.String(),
		Provider:            string(data.Provider),
		PasswordHash:        data.PasswordHash,
		EmailVerified:       data.EmailVerified,
		IsActive:            data.IsActive,
		IsOnboarded:         data.IsOnboarded,
		OTPHash:             data.OTPHash,
		OTPExpiresAt:        data.OTPExpiresAt,
		RefreshTokenHash:    data.RefreshTokenHash,
		ResetTokenHash:      data.ResetTokenHash,
		ResetTokenExpiresAt: data.ResetTokenExpiresAt,
	}
}
