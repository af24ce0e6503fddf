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

// serviceRepository implements the adapter.ServiceRepository interface.
type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository instance.
func NewServiceRepository(db *gorm.DB) adapter.ServiceRepository {
	return &serviceRepository{
		db: db,
	}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Create(model.ServiceFromEntity(service)).Error
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var serviceModel model.ServiceModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&serviceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrServiceNotFound
		}
		return nil, result.Error
	}
	return serviceModel.ToEntity(), nil
}

func (r *serviceRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Service, error) {
	var serviceModels []model.ServiceModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&serviceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	services := make([]*entity.Service, len(serviceModels))
	for i := range serviceModels {
		services[i] = serviceModels[i].ToEntity()
	}
	return services, nil
}

// FindActiveUserIDs returns the users owning at least one active service.
func (r *serviceRepository) FindActiveUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&model.ServiceModel{}).
		Where("active = ?", true).
		Distinct().
		Pluck("user_id", &userIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return userIDs, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Save(model.ServiceFromEntity(service)).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ServiceModel{}).Error
}

func (r *serviceRepository) CreateRule(ctx context.Context, rule *entity.ServicePaymentRule) error {
	return r.db.WithContext(ctx).Create(model.ServicePaymentRuleFromEntity(rule)).Error
}

func (r *serviceRepository) FindRuleByID(ctx context.Context, id uuid.UUID) (*entity.ServicePaymentRule, error) {
	var ruleModel model.ServicePaymentRuleModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ruleModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPaymentRuleNotFound
		}
		return nil, result.Error
	}
	return ruleModel.ToEntity(), nil
}

// FindRulesByService returns the rules of a service, earliest start first.
func (r *serviceRepository) FindRulesByService(ctx context.Context, serviceID uuid.UUID) ([]*entity.ServicePaymentRule, error) {
	var ruleModels []model.ServicePaymentRuleModel
	result := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("start_year ASC, start_month ASC, created_at ASC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rules := make([]*entity.ServicePaymentRule, len(ruleModels))
	for i := range ruleModels {
		rules[i] = ruleModels[i].ToEntity()
	}
	return rules, nil
}

func (r *serviceRepository) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ServicePaymentRuleModel{}).Error
}

func (r *serviceRepository) DeleteRulesByService(ctx context.Context, serviceID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("service_id = ?", serviceID).Delete(&model.ServicePaymentRuleModel{}).Error
}

// ClearDefaultProduct unsets the default product of every rule pointing at productID.
func (r *serviceRepository) ClearDefaultProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.ServicePaymentRuleModel{}).
		Where("default_product_id = ?", productID).
		Update("default_product_id", nil).Error
}
