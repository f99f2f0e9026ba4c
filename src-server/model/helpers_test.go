package model_test

import (
	"context"
	"testing"

	"concertdb/src-server/model"
	"concertdb/src-server/utils"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := utils.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, model.CreateSchema(context.Background(), db))
	return db
}

func insertBand(t *testing.T, db bun.IDB, name, hometown string) *model.Band {
	t.Helper()
	band := &model.Band{Name: name, Hometown: hometown}
	require.NoError(t, band.Insert(context.Background(), db))
	require.NotZero(t, band.ID)
	return band
}

func insertVenue(t *testing.T, db bun.IDB, title, city string) *model.Venue {
	t.Helper()
	venue := &model.Venue{Title: title, City: city}
	require.NoError(t, venue.Insert(context.Background(), db))
	require.NotZero(t, venue.ID)
	return venue
}

func insertConcert(t *testing.T, db bun.IDB, band *model.Band, venue *model.Venue, date string) *model.Concert {
	t.Helper()
	concert := band.PlayInVenue(venue, date)
	require.NoError(t, concert.Insert(context.Background(), db))
	require.NotZero(t, concert.ID)
	return concert
}
