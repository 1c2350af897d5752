package helper_test

import (
	"larisa/config"
	"larisa/helper"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Username = "larisa"
	cfg.DB.Postgres.Write.Password = "p@ss:word"
	cfg.DB.Postgres.Write.Host = "localhost"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "larisa"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	parsed, err := url.Parse(helper.DatabaseURL(cfg))
	require.NoError(t, err)

	password, _ := parsed.User.Password()

	assert.Equal(t, "postgres", parsed.Scheme)
	assert.Equal(t, "p@ss:word", password)
	assert.Equal(t, "localhost:5432", parsed.Host)
	assert.Equal(t, "/test_larisa", parsed.Path)
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
}

func TestRunRejectsUnknownSource(t *testing.T) {
	err := helper.Run("file:///nonexistent/migrations", "postgres://localhost:1/none?sslmode=disable", helper.ActionUp)

	assert.Error(t, err)
}
