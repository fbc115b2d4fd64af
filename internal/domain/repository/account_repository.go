// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"ideamatch/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository is the durable User Store for identity and credential
// state. Each call is atomic; email uniqueness is enforced by the storage
// layer. Lookups by email are case-insensitive.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account.
	Create(ctx context.Context, account *entity.Account) error

	// Update persists the account's mutable fields, including clearing
	// credential-state columns whose pointers are nil. Last writer wins.
	Update(ctx context.Context, account *entity.Account) error

	// List retrieves accounts matching the given filter.
	List(ctx context.Context, filter AccountFilter) ([]*entity.Account, error)

	// Delete removes an account permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountFilter narrows List results. Nil fields mean "any".
type AccountFilter struct {
	Role     *entity.Role
	IsActive *bool
}
