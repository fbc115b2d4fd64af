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

// investorProfileRepository implements the domain.InvestorProfileRepository interface using GORM.
type investorProfileRepository struct {
	db *gorm.DB
}

// NewInvestorProfileRepository is the constructor for investorProfileRepository.
func NewInvestorProfileRepository(db *gorm.DB) repository.InvestorProfileRepository {
	return &investorProfileRepository{db: db}
}

// FindByAccountID retrieves the profile owned by the given account.
func (repo *investorProfileRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.InvestorProfile, error) {
	var profileM model.InvestorProfileModel
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&profileM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrInvestorProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find investor profile")
	}

	return toInvestorProfileDomain(&profileM), nil
}

// Create persists a new profile.
func (repo *investorProfileRepository) Create(ctx context.Context, profile *entity.InvestorProfile) error {
	profileM := fromInvestorProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("investor profile already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create investor profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// Update overwrites an existing profile's preferences.
func (repo *investorProfileRepository) Update(ctx context.Context, profile *entity.InvestorProfile) error {
	profileM := fromInvestorProfileDomain(profile)

	result := repo.db.WithContext(ctx).
		Model(&model.InvestorProfileModel{}).
		Where("account_id = ?", profile.AccountID).
		Select("preferred_stages", "industries", "min_funding", "max_funding", "investment_thesis", "updated_at").
		Updates(profileM)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update investor profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInvestorProfileNotFound
	}

	return nil
}

// toInvestorProfileDomain converts a GORM InvestorProfileModel to a domain entity.
func toInvestorProfileDomain(data *model.InvestorProfileModel) *entity.InvestorProfile {
	if data == nil {
		return nil
	}

	return &entity.InvestorProfile{
		AccountID:        data.AccountID,
		PreferredStages:  splitPreferenceList(data.PreferredStages),
		Industries:       splitPreferenceList(data.Industries),
		MinFunding:       data.MinFunding,
		MaxFunding:       data.MaxFunding,
		InvestmentThesis: data.InvestmentThesis,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromInvestorProfileDomain converts a domain entity to a GORM InvestorProfileModel.
func fromInvestorProfileDomain(data *entity.InvestorProfile) *model.InvestorProfileModel {
	if data == nil {
		return nil
	}

	return &model.InvestorProfileModel{
		AccountID:        data.AccountID,
		PreferredStages:  joinPreferenceList(data.PreferredStages),
		Industries:       joinPreferenceList(data.Industries),
		MinFunding:       data.MinFunding,
		MaxFunding:       data.MaxFunding,
		InvestmentThesis: data.InvestmentThesis,
	}
}

func splitPreferenceList(joined string) []string {
	if joined == "" {
		return nil
	}

	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

func joinPreferenceList(values []string) string {
	return strings.Join(values, ",")
}
