package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hospital-management/config"
	"go-hospital-management/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"

	defaultSQLitePath = "hospital.db"
	sqlitePragmas     = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
)

var ErrUnsupportedDatabaseURL = errors.New("unsupported DATABASE_URL scheme")

// NewConnection opens the database described by cfg.
// DATABASE_URL wins; otherwise the discrete DB_* fields select PostgreSQL, and with neither set
// a local SQLite file is used.
func NewConnection(cfg config.DBConfig, log *logrus.Logger) (*gorm.DB, error) {
	dialect, dsn, err := resolveDSN(cfg)
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch dialect {
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormConfig(cfg.LogLevel, log))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if dialect == DialectSQLite {
		// SQLite serialises writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.WithField("dialect", dialect).Info("Successfully connected to database")

	return db, nil
}

// NewInMemory opens a private in-memory SQLite database with the schema migrated.
func NewInMemory(log *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?"+sqlitePragmas), gormConfig("silent", log))
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// Every connection to :memory: is a different database.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table. Order follows the foreign keys.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.Doctor{},
		&entity.Patient{},
		&entity.Appointment{},
		&entity.MedicalRecord{},
		&entity.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func resolveDSN(cfg config.DBConfig) (string, string, error) {
	url := strings.TrimSpace(cfg.URL)

	switch {
	case url == "" && cfg.Host != "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port,
		)
		return DialectPostgres, dsn, nil
	case url == "":
		return DialectSQLite, sqliteDSN(defaultSQLitePath), nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		// sqlite:///hospital.db is relative, sqlite:////var/db/hospital.db is absolute.
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			path = defaultSQLitePath
		}
		return DialectSQLite, sqliteDSN(path), nil
	}

	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDatabaseURL, url)
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqlitePragmas
	}
	return path + "?" + sqlitePragmas
}

func gormConfig(level string, log *logrus.Logger) *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  parseLogLevel(level),
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
