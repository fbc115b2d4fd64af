package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"ideamatch/internal/delivery/http/middleware"
	"ideamatch/internal/delivery/http/response"
	"ideamatch/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// InvestorHandler holds dependencies for the capital-provider handlers.
type InvestorHandler struct {
	investorUC usecase.InvestorUsecase
	logger     *slog.Logger
}

// NewInvestorHandler is the constructor for InvestorHandler, injected by Fx.
func NewInvestorHandler(investorUC usecase.InvestorUsecase, logger *slog.Logger) *InvestorHandler {
	return &InvestorHandler{
		investorUC: investorUC,
		logger:     logger,
	}
}

type onboardingRequest struct {
	PreferredStages  []string `json:"preferredStages" validate:"required,min=1,dive,max=50"`
	Industries       []string `json:"industries" validate:"required,min=1,dive,max=100"`
	MinFunding       float64  `json:"minFunding" validate:"gte=0"`
	MaxFunding       float64  `json:"maxFunding" validate:"gt=0"`
	InvestmentThesis string   `json:"investmentThesis" validate:"max=5000"`
}

// CompleteOnboarding records the investor's preferences.
func (h *InvestorHandler) CompleteOnboarding(c echo.Context) error {
	accountID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req onboardingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid onboarding input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.investorUC.CompleteOnboarding(c.Request().Context(), usecase.OnboardingInput{
		AccountID:        accountID,
		PreferredStages:  req.PreferredStages,
		Industries:       req.Industries,
		MinFunding:       req.MinFunding,
		MaxFunding:       req.MaxFunding,
		InvestmentThesis: req.InvestmentThesis,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Onboarding completed")
}

// GetProfile returns the investor's own onboarding profile.
func (h *InvestorHandler) GetProfile(c echo.Context) error {
	accountID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	profile, err := h.investorUC.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}

// BrowseIdeas returns a filtered, paginated page of published pitches.
func (h *InvestorHandler) BrowseIdeas(c echo.Context) error {
	input := usecase.BrowseIdeasInput{
		Industry:   c.QueryParam("industry"),
		Stage:      c.QueryParam("stage"),
		Region:     c.QueryParam("region"),
		Search:     c.QueryParam("search"),
		SortBy:     c.QueryParam("sortBy"),
		Descending: c.QueryParam("order") != "asc",
	}

	var err error
	if input.MinFunding, err = parseQueryFloat(c.QueryParam("minFunding")); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "minFunding must be a number")
	}
	if input.MaxFunding, err = parseQueryFloat(c.QueryParam("maxFunding")); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "maxFunding must be a number")
	}
	if input.Page, err = parseQueryInt(c.QueryParam("page")); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "page must be a number")
	}
	if input.Limit, err = parseQueryInt(c.QueryParam("limit")); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "limit must be a number")
	}

	output, err := h.investorUC.BrowseIdeas(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"ideas": output.Ideas,
		"total": output.Total,
		"page":  output.Page,
		"limit": output.Limit,
	}, "")
}

func parseQueryFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}

	return strconv.ParseFloat(raw, 64)
}

func parseQueryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	return strconv.Atoi(raw)
}
