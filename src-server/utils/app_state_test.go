package utils_test

import (
	"context"
	"testing"
	"time"

	"concertdb/src-server/model"
	"concertdb/src-server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB(t *testing.T) {
	db, err := utils.OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var foreignKeys int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	assert.Equal(t, 1, foreignKeys)

	// tables survive across queries on the in-memory database
	require.NoError(t, model.CreateSchema(context.Background(), db))
	count, err := db.NewSelect().Model((*model.Band)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("DB_PATH", "")
		t.Setenv("METRIC_COLLECTION_INTERVAL", "")

		config := utils.NewConfig()
		assert.Equal(t, "9090", config.GetPort())
		assert.Equal(t, "./sqlite.db", config.GetDBPath())
		assert.Equal(t, 15*time.Second, config.GetMetricCollectionInterval())
	})

	t.Run("from env", func(t *testing.T) {
		t.Setenv("PORT", "8081")
		t.Setenv("DB_PATH", ":memory:")
		t.Setenv("METRIC_COLLECTION_INTERVAL", "1m")

		config := utils.NewConfig()
		assert.Equal(t, "8081", config.GetPort())
		assert.Equal(t, ":memory:", config.GetDBPath())
		assert.Equal(t, time.Minute, config.GetMetricCollectionInterval())
	})
}

func TestGracefulShutdown(t *testing.T) {
	t.Setenv("DB_PATH", ":memory:")
	as := utils.NewAppState()

	first := as.CreateGracefulShutdownChan()
	second := as.CreateGracefulShutdownChan()
	as.GracefulShutdown()

	for _, ch := range []<-chan struct{}{first, second} {
		select {
		case <-ch:
		default:
			t.Error("shutdown channel not closed")
		}
	}
	assert.Error(t, as.BunDB.Ping())
}
