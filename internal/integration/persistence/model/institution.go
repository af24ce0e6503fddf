package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// InstitutionModel represents the institutions table in the database.
// Allow-lists are stored comma separated so the schema works on SQLite too.
type InstitutionModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	AllowedProductTypes string    `gorm:"type:varchar(255)"`
	AllowedCurrencies   string    `gorm:"type:varchar(255)"`
	CreatedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for the InstitutionModel.
func (InstitutionModel) TableName() string {
	return "institutions"
}

// ToEntity converts an InstitutionModel to a domain Institution entity.
func (m *InstitutionModel) ToEntity() *entity.Institution {
	var types []entity.ProductType
	for _, t := range splitList(m.AllowedProductTypes) {
		types = append(types, entity.ProductType(t))
	}

	return &entity.Institution{
		ID:                  m.ID,
		Name:                m.Name,
		AllowedProductTypes: types,
		AllowedCurrencies:   splitList(m.AllowedCurrencies),
		CreatedAt:           m.CreatedAt,
	}
}

// InstitutionFromEntity creates an InstitutionModel from a domain Institution entity.
func InstitutionFromEntity(institution *entity.Institution) *InstitutionModel {
	types := make([]string, 0, len(institution.AllowedProductTypes))
	for _, t := range institution.AllowedProductTypes {
		types = append(types, string(t))
	}

	return &InstitutionModel{
		ID:                  institution.ID,
		Name:                institution.Name,
		AllowedProductTypes: strings.Join(types, ","),
		AllowedCurrencies:   strings.Join(institution.AllowedCurrencies, ","),
		CreatedAt:           institution.CreatedAt,
	}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}
