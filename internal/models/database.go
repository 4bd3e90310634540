package models

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

type Context string

// ContextUserID is the gin context key under which the authentication
// middleware stores the ID of the requesting user.
const ContextUserID Context = "pennywise-user-id"

// Connect opens the database and configures the connection pool.
//
// When DB_HOST is set, a postgresql connection is opened and the sqlite
// DSN is ignored. Otherwise the sqlite database at the given path is
// used, which is also what every test suite does.
func Connect(sqliteDSN string) error {
	config := &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
	}

	var db *gorm.DB
	var err error

	if host, ok := os.LookupEnv("DB_HOST"); ok {
		log.Debug().Msg("DB_HOST is set, using postgresql")
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s", host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
		db, err = gorm.Open(postgres.Open(dsn), config)
	} else {
		// busy_timeout bounds the wait on a locked database so that
		// requests fail instead of blocking indefinitely
		dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN)
		db, err = gorm.Open(sqlite.Open(dsn), config)
	}

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// sqlite only supports a single writer. Funneling all access through
	// one connection prevents SQLITE_BUSY errors.
	if _, ok := os.LookupEnv("DB_HOST"); !ok {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	// Query callbacks
	err = db.Callback().Query().After("*").Register("pennywise:after_query", queryCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Query().After("*").Register("pennywise:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("pennywise:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("*").Register("pennywise:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("pennywise:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("*").Register("pennywise:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("pennywise:after_delete_general", generalCallback)
	if err != nil {
		return err
	}

	// Set the exported variable
	DB = db

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones.
//
// sqlite and postgres phrase constraint violations differently, so every
// constraint is matched against both forms.
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()

	// Pot names must be unique per user
	if strings.Contains(msg, "UNIQUE constraint failed: pots.user_id, pots.name") ||
		strings.Contains(msg, `unique constraint "pot_user_name"`) {
		db.Error = ErrPotNameExists
	}

	// At most one budget per category and user
	if strings.Contains(msg, "UNIQUE constraint failed: budgets.user_id, budgets.category") ||
		strings.Contains(msg, `unique constraint "budget_user_category"`) {
		db.Error = ErrBudgetCategoryExists
	}

	// Exactly one balance row per user
	if strings.Contains(msg, "UNIQUE constraint failed: balances.user_id") ||
		strings.Contains(msg, `unique constraint "idx_balances_user_id"`) {
		db.Error = ErrBalanceExists
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users,
// who may safely retry the request.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if infrastructureError(db.Error) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// infrastructureError reports whether the error is a failure of the
// database itself, not of the statement. These errors can also occur
// when beginning a transaction, which bypasses the gorm callbacks.
//
// "sql: database is closed" is hard-coded in the sql module, see
// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
func infrastructureError(err error) bool {
	msg := err.Error()
	return msg == "sql: database is closed" || strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// TimeSort wraps a timestamp column for use in ORDER BY. sqlite stores
// timestamps as text, so they have to go through datetime() before
// comparing. postgres compares its native timestamps directly.
func TimeSort(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "postgres" {
		return column
	}

	return fmt.Sprintf("datetime(%s)", column)
}

// NameSort returns a case-insensitive ordering expression for a text
// column. postgres has no NOCASE collation, there LOWER() is used.
func NameSort(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("LOWER(%s)", column)
	}

	return fmt.Sprintf("%s COLLATE NOCASE", column)
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, Balance{}, Transaction{}, Pot{}, Budget{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
