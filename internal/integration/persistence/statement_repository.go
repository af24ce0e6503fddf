package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// statementRepository implements the adapter.StatementRepository interface.
type statementRepository struct {
	db *gorm.DB
}

// NewStatementRepository creates a new statement repository instance.
func NewStatementRepository(db *gorm.DB) adapter.StatementRepository {
	return &statementRepository{
		db: db,
	}
}

func (r *statementRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, created_at ASC")
		}).
		Preload("Adjustments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

// Create creates a new statement. Items and adjustments are stored separately.
func (r *statementRepository) Create(ctx context.Context, statement *entity.Statement) error {
	statementModel := model.StatementFromEntity(statement)
	statementModel.Items = nil
	statementModel.Adjustments = nil
	return r.db.WithContext(ctx).Create(statementModel).Error
}

// FindByID retrieves a statement with its items and adjustments.
func (r *statementRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Statement, error) {
	var statementModel model.StatementModel
	result := r.withDetails(ctx).Where("id = ?", id).First(&statementModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrStatementNotFound
		}
		return nil, result.Error
	}
	return statementModel.ToEntity(), nil
}

// FindOpenByProduct retrieves the OPEN statement of a card.
func (r *statementRepository) FindOpenByProduct(ctx context.Context, productID uuid.UUID) (*entity.Statement, error) {
	var statementModel model.StatementModel
	result := r.withDetails(ctx).
		Where("product_id = ? AND status = ?", productID, string(entity.StatementStatusOpen)).
		Order("closing_date DESC").
		First(&statementModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrStatementNotFound
		}
		return nil, result.Error
	}
	return statementModel.ToEntity(), nil
}

// FindByProduct retrieves every statement of a card, latest closing date first.
func (r *statementRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Statement, error) {
	var statementModels []model.StatementModel
	result := r.withDetails(ctx).
		Where("product_id = ?", productID).
		Order("closing_date DESC").
		Find(&statementModels)
	if result.Error != nil {
		return nil, result.Error
	}

	statements := make([]*entity.Statement, len(statementModels))
	for i := range statementModels {
		statements[i] = statementModels[i].ToEntity()
	}
	return statements, nil
}

// FindByPaymentTransaction returns the statement paid by the transaction, or nil.
func (r *statementRepository) FindByPaymentTransaction(ctx context.Context, transactionID uuid.UUID) (*entity.Statement, error) {
	var statementModels []model.StatementModel
	result := r.db.WithContext(ctx).
		Where("payment_transaction_id = ?", transactionID).
		Limit(1).
		Find(&statementModels)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(statementModels) == 0 {
		return nil, nil
	}
	return statementModels[0].ToEntity(), nil
}

// Update persists status, totals and payment fields.
func (r *statementRepository) Update(ctx context.Context, statement *entity.Statement) error {
	statement.UpdatedAt = time.Now().UTC()
	statementModel := model.StatementFromEntity(statement)
	statementModel.Items = nil
	statementModel.Adjustments = nil
	result := r.db.WithContext(ctx).
		Model(&model.StatementModel{ID: statement.ID}).
		Select("status", "calculated_amount", "adjustments_amount", "total_amount",
			"paid_date", "payment_transaction_id", "updated_at").
		Updates(statementModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrStatementNotFound
	}
	return nil
}

// DeleteByProduct removes every statement of a card with its items and adjustments.
func (r *statementRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	statementIDs := db.Model(&model.StatementModel{}).Select("id").Where("product_id = ?", productID)

	if err := db.Where("statement_id IN (?)", statementIDs).Delete(&model.StatementItemModel{}).Error; err != nil {
		return err
	}
	if err := db.Where("statement_id IN (?)", statementIDs).Delete(&model.StatementAdjustmentModel{}).Error; err != nil {
		return err
	}
	return db.Where("product_id = ?", productID).Delete(&model.StatementModel{}).Error
}

// AddItem stores a statement item.
func (r *statementRepository) AddItem(ctx context.Context, item *entity.StatementItem) error {
	return r.db.WithContext(ctx).Create(model.StatementItemFromEntity(item)).Error
}

// FindItemByTransaction returns the item holding the transaction, or nil.
func (r *statementRepository) FindItemByTransaction(ctx context.Context, transactionID uuid.UUID) (*entity.StatementItem, error) {
	var itemModels []model.StatementItemModel
	result := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Limit(1).
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(itemModels) == 0 {
		return nil, nil
	}
	return itemModels[0].ToEntity(), nil
}

// RenameItem updates the description of the item holding the transaction.
func (r *statementRepository) RenameItem(ctx context.Context, transactionID uuid.UUID, description string) error {
	return r.db.WithContext(ctx).
		Model(&model.StatementItemModel{}).
		Where("transaction_id = ?", transactionID).
		Update("description", description).Error
}

// DeleteItem removes a statement item.
func (r *statementRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.StatementItemModel{}).Error
}

// AddAdjustment stores a statement adjustment.
func (r *statementRepository) AddAdjustment(ctx context.Context, adjustment *entity.StatementAdjustment) error {
	return r.db.WithContext(ctx).Create(model.StatementAdjustmentFromEntity(adjustment)).Error
}

// FindAdjustment retrieves an adjustment by its ID.
func (r *statementRepository) FindAdjustment(ctx context.Context, id uuid.UUID) (*entity.StatementAdjustment, error) {
	var adjustmentModel model.StatementAdjustmentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&adjustmentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAdjustmentNotFound
		}
		return nil, result.Error
	}
	return adjustmentModel.ToEntity(), nil
}

// DeleteAdjustment removes a statement adjustment.
func (r *statementRepository) DeleteAdjustment(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.StatementAdjustmentModel{}).Error
}
