package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type LedgerContext string

const (
	DBContextURL LedgerContext = "ledger-backend-url"
)

// Connect opens the SQLite database, migrates the schema and configures the connection pool.
//
// The returned handle is the only store handle of the process and is passed explicitly
// to everything that needs it.
func Connect(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: newQueryLogger(log.Logger),

		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	// Migration with foreign keys disabled since sqlite does not support
	// ALTER COLUMN, so tables are copied to a temporary table, then the table
	// is dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection serializes all writers. Every ledger operation
	// runs in one transaction on this connection, so two operations on the
	// same section row can never interleave.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "ledger:after_query", queryCallback},
		{db.Callback().Query().After("*"), "ledger:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "ledger:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "ledger:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "ledger:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "ledger:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "ledger:after_delete_general", generalCallback},
		{db.Callback().Raw().After("*"), "ledger:after_raw_general", generalCallback},
		{db.Callback().Row().After("*"), "ledger:after_row_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: users.email") {
		db.Error = ErrEmailNotUnique
	}

	if strings.Contains(db.Error.Error(), "FOREIGN KEY constraint failed") {
		db.Error = ErrUserReference
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// The error is logged and wrapped with ErrGeneral. The cause stays
// in the chain so that callers can tell transient failures from fatal ones.
func generalCallback(db *gorm.DB) {
	if db.Error == nil || errors.Is(db.Error, ErrGeneral) {
		return
	}

	var sqliteErr *go_sqlite.Error

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || errors.As(db.Error, &sqliteErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = fmt.Errorf("%w: %w", ErrGeneral, db.Error)
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, Section{}, IncomePool{}, Income{}, Transaction{}, SavingGoal{}, Investment{}, Expense{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
