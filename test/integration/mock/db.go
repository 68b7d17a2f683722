//go:build integration

package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/slogsolutions/Audit-Management-Platform/config"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/db"
)

var once sync.Once
var database *Db

// Table pairs a table name with its gorm model.
type Table struct {
	Name  string
	Model any
}

// Db is a shared in-memory SQLite database for the whole suite.
type Db struct {
	DbConn *gorm.DB
	tables []Table
}

// NewDb opens the suite database once and migrates the given tables. Tables
// are cleared in reverse order, so list referenced tables first.
func NewDb(name string, tables []Table) *Db {
	once.Do(func() {
		database = open(name, tables)
	})
	return database
}

func open(name string, tables []Table) *Db {
	conn, err := db.NewSQLiteConnection(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + name + "?mode=memory&cache=shared",
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	models := make([]any, len(tables))
	for i, t := range tables {
		models[i] = t.Model
	}
	if err := conn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return &Db{
		DbConn: conn.DB(),
		tables: tables,
	}
}

// ClearDB deletes every row, dependents first.
func (d *Db) ClearDB() error {
	for i := len(d.tables) - 1; i >= 0; i-- {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(d.tables[i].Model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", d.tables[i].Name, err)
		}
	}
	return nil
}

// GetModel returns the model registered for a table name.
func (d *Db) GetModel(table string) (any, bool) {
	for _, t := range d.tables {
		if t.Name == table {
			return t.Model, true
		}
	}
	return nil, false
}
