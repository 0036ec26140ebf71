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

var DB *gorm.DB

type ContextKey string

const (
	DBContextURL ContextKey = "finance-tracker-url"
)

// Connect opens the SQLite database, migrates the schema and configures the
// connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	// Migration runs with foreign keys disabled since sqlite does not
	// support ALTER COLUMN. Tables are copied to a temporary table, dropped
	// and recreated instead.
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection serializes all writes, which prevents SQLITE_BUSY
	// errors and makes wallet balance updates atomic.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "finance_tracker:after_query", queryCallback},
		{db.Callback().Query().After("*"), "finance_tracker:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "finance_tracker:after_create", constraintCallback},
		{db.Callback().Create().After("*"), "finance_tracker:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "finance_tracker:after_update", constraintCallback},
		{db.Callback().Update().After("*"), "finance_tracker:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "finance_tracker:after_delete", constraintCallback},
		{db.Callback().Delete().After("*"), "finance_tracker:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return err
		}
	}

	DB = db

	return nil
}

var plural = regexp.MustCompile("ies$")

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = plural.ReplaceAllString(name, "y")
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// constraintCallback replaces constraint violations reported by the database
// with user friendly errors
func constraintCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: users.email"):
		db.Error = ErrUserEmailNotUnique
	case strings.Contains(msg, "UNIQUE constraint failed: wallets.name"):
		db.Error = ErrWalletNameNotUnique
	case strings.Contains(msg, "UNIQUE constraint failed: categories.name"):
		db.Error = ErrCategoryNameNotUnique
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		db.Error = ErrReference
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	db.Error = GeneralError(db.Error)
}

// GeneralError returns ErrGeneral for connection and driver errors and err
// otherwise. Use it for errors that do not pass through the callbacks, like
// a failure to begin a transaction.
func GeneralError(err error) error {
	if err == nil {
		return nil
	}

	// "sql: database is closed" is hard-coded in the sql module
	var sqliteErr *go_sqlite.Error
	if err.Error() == "sql: database is closed" || errors.As(err, &sqliteErr) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(User{}, Wallet{}, Category{}, CategoryRule{}, Group{}, Transaction{}, ExpenseSplit{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
