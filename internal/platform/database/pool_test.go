package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutURL(t *testing.T) {
	pool, err := New(Config{})
	require.NoError(t, err)
	assert.Nil(t, pool)
	assert.Error(t, pool.Health(context.Background()))
	assert.NoError(t, pool.Close())
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	migrations := fstest.MapFS{
		"002_index.sql":  {Data: []byte("CREATE INDEX IF NOT EXISTS idx ON t (id)")},
		"001_tables.sql": {Data: []byte("CREATE TABLE IF NOT EXISTS t (id INT)")},
		"README.md":      {Data: []byte("ignored")},
	}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS t (id INT)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx ON t (id)")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, FromDB(db).Migrate(context.Background(), migrations))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

	err = FromDB(db).Migrate(context.Background(), fstest.MapFS{
		"001.sql": {Data: []byte("CREATE TABLE x (id INT)")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply migration 001.sql")
}

func TestHealth(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, FromDB(db).Health(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
