package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// institutionRepository implements the adapter.InstitutionRepository interface.
type institutionRepository struct {
	db *gorm.DB
}

// NewInstitutionRepository creates a new institution repository instance.
func NewInstitutionRepository(db *gorm.DB) adapter.InstitutionRepository {
	return &institutionRepository{db: db}
}

func (r *institutionRepository) Create(ctx context.Context, institution *entity.Institution) error {
	return r.db.WithContext(ctx).Create(model.InstitutionFromEntity(institution)).Error
}

func (r *institutionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Institution, error) {
	var institutionModel model.InstitutionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&institutionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInstitutionNotFound
		}
		return nil, result.Error
	}
	return institutionModel.ToEntity(), nil
}

func (r *institutionRepository) FindAll(ctx context.Context) ([]*entity.Institution, error) {
	var institutionModels []model.InstitutionModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&institutionModels).Error; err != nil {
		return nil, err
	}
	institutions := make([]*entity.Institution, len(institutionModels))
	for i := range institutionModels {
		institutions[i] = institutionModels[i].ToEntity()
	}
	return institutions, nil
}
