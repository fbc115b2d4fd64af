package usecase

import (
	"context"

	"ideamatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ListAccountsInput narrows the admin account listing. Nil fields mean "any".
type ListAccountsInput struct {
	Role     *entity.Role
	IsActive *bool
}

// UpdateAccountInput carries the admin-editable fields. Nil fields are left unchanged.
type UpdateAccountInput struct {
	ID       uuid.UUID
	FullName *string
	IsActive *bool
}

// AccountAdminUsecase covers back-office account management.
type AccountAdminUsecase interface {
	// GetAccount retrieves one account.
	GetAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// ListAccounts retrieves accounts matching the filter, newest first.
	ListAccounts(ctx context.Context, input ListAccountsInput) ([]*entity.Account, error)

	// UpdateAccount applies the given field changes.
	UpdateAccount(ctx context.Context, input UpdateAccountInput) (*entity.Account, error)

	// DeleteAccount removes an account permanently.
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}
