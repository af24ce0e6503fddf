package mock

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

var once sync.Once
var database *Db

type Db struct {
	Database *db.Database
	DbConn   *gorm.DB
	models   map[string]any
	tables   []string
}

// NewDb opens one shared in-memory sqlite database with the ledger schema.
func NewDb(name string) *Db {
	once.Do(func() {
		database = open(name)
	})
	return database
}

func open(name string) *Db {
	conn, err := db.Open(&config.DatabaseConfig{
		URL: fmt.Sprintf("%sfile:%s?mode=memory&cache=shared", config.SQLitePrefix, name),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to open database. err: %s", err.Error()))
	}

	models := model.AllModels()
	if err := conn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	newDbMock := &Db{
		Database: conn,
		DbConn:   conn.DB(),
		models:   make(map[string]any, len(models)),
	}
	for _, m := range models {
		stmt := &gorm.Statement{DB: newDbMock.DbConn}
		if err := stmt.Parse(m); err != nil {
			panic(err)
		}
		newDbMock.models[stmt.Schema.Table] = m
		newDbMock.tables = append(newDbMock.tables, stmt.Schema.Table)
	}
	return newDbMock
}

// ClearDB deletes every row. Foreign keys are switched off for the duration so
// the table order does not matter.
func (d *Db) ClearDB() error {
	if err := d.DbConn.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return err
	}
	defer d.DbConn.Exec("PRAGMA foreign_keys = ON")

	for _, table := range d.tables {
		if err := d.DbConn.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		err := d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}

// SeedInstitution stores an institution that issues every product type in every currency.
func (d *Db) SeedInstitution(name string) (uuid.UUID, error) {
	institution := entity.NewInstitution(name, nil, nil)
	if err := d.DbConn.Create(model.InstitutionFromEntity(institution)).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to seed institution %s: %w", name, err)
	}
	return institution.ID, nil
}
