package postgres

import (
	"context"

	"ideamatch/internal/domain/entity"
	domainerrors "ideamatch/internal/domain/errors"
	"ideamatch/internal/domain/repository"
	"ideamatch/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	defaultIdeaPageSize = 20
	maxIdeaPageSize     = 100
)

// ideaSortColumns whitelists client-supplied sort keys against the real
// column names. Anything else falls back to created_at.
var ideaSortColumns = map[string]string{
	"created_at":     "created_at",
	"funding_amount": "funding_amount",
	"equity_offered": "equity_offered",
	"startup_name":   "startup_name",
}

// ideaRepository implements the domain.IdeaRepository interface using GORM.
type ideaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository is the constructor for ideaRepository.
func NewIdeaRepository(db *gorm.DB) repository.IdeaRepository {
	return &ideaRepository{db: db}
}

// Create persists a new idea.
func (repo *ideaRepository) Create(ctx context.Context, idea *entity.Idea) error {
	ideaM := fromIdeaDomain(idea)

	if err := repo.db.WithContext(ctx).Create(ideaM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required idea information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create idea")
	}

	idea.ID = ideaM.ID
	idea.CreatedAt = ideaM.CreatedAt
	idea.UpdatedAt = ideaM.UpdatedAt

	return nil
}

// FindByID retrieves a single idea.
func (repo *ideaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Idea, error) {
	var ideaM model.IdeaModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ideaM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdeaNotFound
		}

		return nil, errors.Wrap(err, "failed to find idea by id")
	}

	return toIdeaDomain(&ideaM), nil
}

// Search returns the matching page of ideas plus the total match count.
func (repo *ideaRepository) Search(ctx context.Context, query repository.IdeaQuery) ([]*entity.Idea, int64, error) {
	base := repo.db.WithContext(ctx).Model(&model.IdeaModel{})

	if query.FounderID != uuid.Nil {
		base = base.Where("founder_id = ?", query.FounderID)
	}
	if query.Industry != "" {
		base = base.Where("industry = ?", query.Industry)
	}
	if query.Stage != "" {
		base = base.Where("stage = ?", query.Stage)
	}
	if query.Region != "" {
		base = base.Where("region = ?", query.Region)
	}
	if query.MinFunding > 0 {
		base = base.Where("funding_amount >= ?", query.MinFunding)
	}
	if query.MaxFunding > 0 {
		base = base.Where("funding_amount <= ?", query.MaxFunding)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.Where("startup_name ILIKE ? OR pitch_title ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count ideas")
	}

	sortColumn, ok := ideaSortColumns[query.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	order := sortColumn + " ASC"
	if query.Descending {
		order = sortColumn + " DESC"
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultIdeaPageSize
	}
	if limit > maxIdeaPageSize {
		limit = maxIdeaPageSize
	}
	page := query.Page
	if page < 1 {
		page = 1
	}

	var ideaMs []*model.IdeaModel
	err := base.
		Order(order).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&ideaMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to search ideas")
	}

	ideas := make([]*entity.Idea, 0, len(ideaMs))
	for _, ideaM := range ideaMs {
		ideas = append(ideas, toIdeaDomain(ideaM))
	}

	return ideas, total, nil
}

// toIdeaDomain converts a GORM IdeaModel to a domain Idea entity.
func toIdeaDomain(data *model.IdeaModel) *entity.Idea {
	if data == nil {
		return nil
	}

	return &entity.Idea{
		ID:            data.ID,
		FounderID:     data.FounderID,
		StartupName:   data.StartupName,
		PitchTitle:    data.PitchTitle,
		Description:   data.Description,
		Industry:      data.Industry,
		Stage:         data.Stage,
		FundingAmount: data.FundingAmount,
		RoundType:     data.RoundType,
		EquityOffered: data.EquityOffered,
		Region:        data.Region,
		PitchDeckURL:  data.PitchDeckURL,
		PitchDeckKey:  data.PitchDeckKey,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromIdeaDomain converts a domain Idea entity to a GORM IdeaModel for persistence.
func fromIdeaDomain(data *entity.Idea) *model.IdeaModel {
	if data == nil {
		return nil
	}

	return &model.IdeaModel{
		ID:            data.ID,
		FounderID:     data.FounderID,
		StartupName:   data.StartupName,
		PitchTitle:    data.PitchTitle,
		Description:   data.Description,
		Industry:      data.Industry,
		Stage:         data.Stage,
		FundingAmount: data.FundingAmount,
		RoundType:     data.RoundType,
		EquityOffered: data.EquityOffered,
		Region:        data.Region,
		PitchDeckURL:  data.PitchDeckURL,
		PitchDeckKey:  data.PitchDeckKey,
	}
}
