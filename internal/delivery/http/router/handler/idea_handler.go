package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"ideamatch/internal/delivery/http/middleware"
	"ideamatch/internal/delivery/http/response"
	"ideamatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// IdeaHandler holds dependencies for the idea-submitter handlers.
type IdeaHandler struct {
	ideaUC usecase.IdeaUsecase
	logger *slog.Logger
}

// NewIdeaHandler is the constructor for IdeaHandler, injected by Fx.
func NewIdeaHandler(ideaUC usecase.IdeaUsecase, logger *slog.Logger) *IdeaHandler {
	return &IdeaHandler{
		ideaUC: ideaUC,
		logger: logger,
	}
}

type createIdeaForm struct {
	StartupName   string  `validate:"required,max=255"`
	PitchTitle    string  `validate:"required,max=255"`
	Description   string  `validate:"max=5000"`
	Industry      string  `validate:"required,max=100"`
	Stage         string  `validate:"required,max=50"`
	FundingAmount float64 `validate:"required,gt=0"`
	RoundType     string  `validate:"max=50"`
	EquityOffered float64 `validate:"gte=0,lte=100"`
	Region        string  `validate:"required,max=100"`
}

// CreateIdea publishes a pitch. The request is multipart form data so the
// pitch deck can travel with the fields.
func (h *IdeaHandler) CreateIdea(c echo.Context) error {
	founderID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	form := createIdeaForm{
		StartupName: c.FormValue("startupName"),
		PitchTitle:  c.FormValue("pitchTitle"),
		Description: c.FormValue("description"),
		Industry:    c.FormValue("industry"),
		Stage:       c.FormValue("stage"),
		RoundType:   c.FormValue("roundType"),
		Region:      c.FormValue("region"),
	}

	var err error
	form.FundingAmount, err = parseFormFloat(c.FormValue("fundingAmount"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "fundingAmount must be a number")
	}
	if raw := c.FormValue("equityOffered"); raw != "" {
		form.EquityOffered, err = parseFormFloat(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "equityOffered must be a number")
		}
	}

	if err := c.Validate(&form); err != nil {
		return err
	}

	input := usecase.CreateIdeaInput{
		FounderID:     founderID,
		StartupName:   form.StartupName,
		PitchTitle:    form.PitchTitle,
		Description:   form.Description,
		Industry:      form.Industry,
		Stage:         form.Stage,
		FundingAmount: form.FundingAmount,
		EquityOffered: form.EquityOffered,
		Region:        form.Region,
	}
	if form.RoundType != "" {
		input.RoundType = &form.RoundType
	}

	if fileHeader, err := c.FormFile("pitchDeck"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Failed to read pitch deck upload")
		}
		defer file.Close()

		input.PitchDeck = &usecase.PitchDeckUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Content:     file,
		}
	}

	idea, err := h.ideaUC.CreateIdea(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, idea, "Idea published successfully")
}

// GetIdea retrieves a single pitch.
func (h *IdeaHandler) GetIdea(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid idea ID")
	}

	idea, err := h.ideaUC.GetIdea(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, idea, "")
}

// ListMyIdeas returns the caller's own pitches.
func (h *IdeaHandler) ListMyIdeas(c echo.Context) error {
	founderID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	ideas, err := h.ideaUC.ListMyIdeas(c.Request().Context(), founderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ideas, "")
}

func parseFormFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("empty value")
	}

	return strconv.ParseFloat(raw, 64)
}
