package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/packfinderz-promotions/pkg/config"
	"github.com/angelmondragon/packfinderz-promotions/pkg/logger"
)

func TestNewSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promotions.db")
	client, err := NewSQLite(context.Background(), config.DBConfig{SQLitePath: path}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.Equal(t, "sqlite", client.Dialect())
	require.NoError(t, client.Ping(context.Background()))

	var one int
	require.NoError(t, client.DB().Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestNewRequiresConnectionSettings(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{}, nil)
	assert.Error(t, err)

	_, err = NewSQLite(context.Background(), config.DBConfig{}, nil)
	assert.Error(t, err)
}
