package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// billRepository implements the adapter.BillRepository interface.
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository instance.
func NewBillRepository(db *gorm.DB) adapter.BillRepository {
	return &billRepository{
		db: db,
	}
}

// CreateIfAbsent inserts the bill unless its service already has one for the period.
func (r *billRepository) CreateIfAbsent(ctx context.Context, bill *entity.ServiceBill) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model.ServiceBillFromEntity(bill))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *billRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceBill, error) {
	var billModel model.ServiceBillModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBillNotFound
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// FindByPeriod returns the user's bills for (year, month) ordered by due date.
func (r *billRepository) FindByPeriod(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.ServiceBill, error) {
	var billModels []model.ServiceBillModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("due_date ASC, created_at ASC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBills(billModels), nil
}

// FindPendingBefore returns the user's PENDING bills of periods before (year, month).
func (r *billRepository) FindPendingBefore(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.ServiceBill, error) {
	var billModels []model.ServiceBillModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.BillStatusPending)).
		Where("(year < ? OR (year = ? AND month < ?))", year, year, month).
		Order("year ASC, month ASC, due_date ASC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBills(billModels), nil
}

// FindByTransaction returns the bill settled by the transaction, or nil.
func (r *billRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*entity.ServiceBill, error) {
	var billModels []model.ServiceBillModel
	result := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Limit(1).
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(billModels) == 0 {
		return nil, nil
	}
	return billModels[0].ToEntity(), nil
}

func (r *billRepository) Update(ctx context.Context, bill *entity.ServiceBill) error {
	bill.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(model.ServiceBillFromEntity(bill)).Error
}

func (r *billRepository) DeleteByService(ctx context.Context, serviceID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("service_id = ?", serviceID).Delete(&model.ServiceBillModel{}).Error
}

func toBills(billModels []model.ServiceBillModel) []*entity.ServiceBill {
	bills := make([]*entity.ServiceBill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToEntity()
	}
	return bills
}
