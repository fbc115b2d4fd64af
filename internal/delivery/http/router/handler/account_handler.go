package handler

import (
	"log/slog"
	"net/http"
	"time"

	"ideamatch/internal/delivery/http/response"
	"ideamatch/internal/domain/entity"
	"ideamatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for back-office account management.
type AccountHandler struct {
	adminUC usecase.AccountAdminUsecase
	logger  *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(adminUC usecase.AccountAdminUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		adminUC: adminUC,
		logger:  logger,
	}
}

// accountView is the admin-facing account shape. Credential material never
// leaves the service.
type accountView struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	Role          string    `json:"role"`
	Provider      string    `json:"provider"`
	EmailVerified bool      `json:"emailVerified"`
	IsActive      bool      `json:"isActive"`
	IsOnboarded   bool      `json:"isOnboarded"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toAccountView(account *entity.Account) accountView {
	return accountView{
		ID:            account.ID,
		Email:         account.Email,
		FullName:      account.FullName,
		Role:          account.Role.String(),
		Provider:      string(account.Provider),
		EmailVerified: account.EmailVerified,
		IsActive:      account.IsActive,
		IsOnboarded:   account.IsOnboarded,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}

// ListAccounts returns accounts, optionally filtered by role and active flag.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	var input usecase.ListAccountsInput

	if raw := c.QueryParam("role"); raw != "" {
		role := entity.Role(raw)
		if !role.IsValid() {
			return response.BadRequest(c, "INVALID_INPUT", "Unknown role")
		}
		input.Role = &role
	}
	if raw := c.QueryParam("isActive"); raw != "" {
		isActive := raw == "true"
		input.IsActive = &isActive
	}

	accounts, err := h.adminUC.ListAccounts(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]accountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, toAccountView(account))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// GetAccount returns one account.
func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	account, err := h.adminUC.GetAccount(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountView(account), "")
}

type updateAccountRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,max=100"`
	IsActive *bool   `json:"isActive"`
}

// UpdateAccount applies admin-editable field changes.
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	account, err := h.adminUC.UpdateAccount(c.Request().Context(), usecase.UpdateAccountInput{
		ID:       id,
		FullName: req.FullName,
		IsActive: req.IsActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountView(account), "Account updated")
}

// DeleteAccount removes an account permanently.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	if err := h.adminUC.DeleteAccount(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}
