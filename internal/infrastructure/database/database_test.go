package database

import (
	"testing"

	"go-hospital-management/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestResolveDSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DBConfig
		dialect string
		dsn     string
	}{
		{
			name:    "empty falls back to local sqlite",
			cfg:     config.DBConfig{},
			dialect: DialectSQLite,
			dsn:     "hospital.db?" + sqlitePragmas,
		},
		{
			name:    "relative sqlite url",
			cfg:     config.DBConfig{URL: "sqlite:///hospital.db"},
			dialect: DialectSQLite,
			dsn:     "hospital.db?" + sqlitePragmas,
		},
		{
			name:    "absolute sqlite url",
			cfg:     config.DBConfig{URL: "sqlite:////var/lib/hospital.db"},
			dialect: DialectSQLite,
			dsn:     "/var/lib/hospital.db?" + sqlitePragmas,
		},
		{
			name:    "postgres url passes through",
			cfg:     config.DBConfig{URL: "postgresql://u:p@db:5432/hospital"},
			dialect: DialectPostgres,
			dsn:     "postgresql://u:p@db:5432/hospital",
		},
		{
			name:    "discrete postgres fields",
			cfg:     config.DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "hospital"},
			dialect: DialectPostgres,
			dsn:     "host=db user=u password=p dbname=hospital port=5432 sslmode=disable TimeZone=UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect, dsn, err := resolveDSN(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, dialect)
			assert.Equal(t, tt.dsn, dsn)
		})
	}
}

func TestResolveDSNRejectsUnknownScheme(t *testing.T) {
	_, _, err := resolveDSN(config.DBConfig{URL: "mysql://root@localhost/hospital"})
	assert.ErrorIs(t, err, ErrUnsupportedDatabaseURL)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Info, parseLogLevel("INFO"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}

func TestNewInMemoryMigratesSchema(t *testing.T) {
	db, err := NewInMemory(logrus.New())
	require.NoError(t, err)

	for _, table := range []string{"users", "doctors", "patients", "appointments", "medical_records", "audit_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
