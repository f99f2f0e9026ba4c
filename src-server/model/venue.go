package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

type Venue struct {
	bun.BaseModel `bun:"table:venues,alias:venue"`

	ID    int64  `bun:"id,pk,autoincrement"`
	Title string `bun:"title,notnull"` // required
	City  string `bun:"city,notnull"`  // required
}

func (v *Venue) Insert(ctx context.Context, db bun.IDB) error {
	switch {
	case v.Title == "":
		return fmt.Errorf("Venue.Insert: title is required")
	case v.City == "":
		return fmt.Errorf("Venue.Insert: city is required")
	}

	if _, err := db.NewInsert().
		Model(v).
		Exec(ctx); err != nil {
		return fmt.Errorf("Venue.Insert: %w", err)
	}
	return nil
}

// Returns nil if no venue has the given id
func FindVenue(ctx context.Context, db bun.IDB, id int64) (*Venue, error) {
	venue := new(Venue)
	if err := db.NewSelect().
		Model(venue).
		Where("venue.id = ?", id).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("FindVenue: %w", err)
	}
	return venue, nil
}

func (v *Venue) Concerts(ctx context.Context, db bun.IDB) ([]*Concert, error) {
	concerts, err := listConcerts(ctx, db, "concert.venue_id = ?", v.ID)
	if err != nil {
		return nil, fmt.Errorf("Venue.Concerts: %w", err)
	}
	return concerts, nil
}

// The band of every concert at this venue, one entry per concert
func (v *Venue) Bands(ctx context.Context, db bun.IDB) ([]*Band, error) {
	concerts, err := listConcerts(ctx, db, "concert.venue_id = ?", v.ID)
	if err != nil {
		return nil, fmt.Errorf("Venue.Bands: %w", err)
	}
	bands := make([]*Band, 0, len(concerts))
	for _, concert := range concerts {
		bands = append(bands, concert.Band)
	}
	return bands, nil
}

// First concert at this venue on exactly this date, nil if there is none
func (v *Venue) ConcertOn(ctx context.Context, db bun.IDB, date string) (*Concert, error) {
	concert := new(Concert)
	if err := db.NewSelect().
		Model(concert).
		Relation("Band").
		Relation("Venue").
		Where("concert.venue_id = ?", v.ID).
		Where("concert.date = ?", date).
		OrderExpr("concert.id ASC").
		Limit(1).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("Venue.ConcertOn: %w", err)
	}
	return concert, nil
}

// The band that played here most often, ties go to the lowest band id.
// Returns nil for a venue without concerts.
func (v *Venue) MostFrequentBand(ctx context.Context, db bun.IDB) (*Band, error) {
	concerts, err := listConcerts(ctx, db, "concert.venue_id = ?", v.ID)
	if err != nil {
		return nil, fmt.Errorf("Venue.MostFrequentBand: %w", err)
	}

	tally := make(map[int64]int)
	var best *Band
	for _, concert := range concerts {
		tally[concert.BandID]++
		switch {
		case best == nil,
			tally[concert.BandID] > tally[best.ID],
			tally[concert.BandID] == tally[best.ID] && concert.BandID < best.ID:
			best = concert.Band
		}
	}
	return best, nil
}
