package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// A performing act. Its concerts are looked up by query, the band holds no
// pointers back to them.
type Band struct {
	bun.BaseModel `bun:"table:bands,alias:band"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Name     string `bun:"name,notnull"`     // required
	Hometown string `bun:"hometown,notnull"` // required
}

func (b *Band) Insert(ctx context.Context, db bun.IDB) error {
	switch {
	case b.Name == "":
		return fmt.Errorf("Band.Insert: name is required")
	case b.Hometown == "":
		return fmt.Errorf("Band.Insert: hometown is required")
	}

	if _, err := db.NewInsert().
		Model(b).
		Exec(ctx); err != nil {
		return fmt.Errorf("Band.Insert: %w", err)
	}
	return nil
}

// Returns nil if no band has the given id
func FindBand(ctx context.Context, db bun.IDB, id int64) (*Band, error) {
	band := new(Band)
	if err := db.NewSelect().
		Model(band).
		Where("band.id = ?", id).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("FindBand: %w", err)
	}
	return band, nil
}

// All concerts of this band, oldest first
func (b *Band) Concerts(ctx context.Context, db bun.IDB) ([]*Concert, error) {
	concerts, err := listConcerts(ctx, db, "concert.band_id = ?", b.ID)
	if err != nil {
		return nil, fmt.Errorf("Band.Concerts: %w", err)
	}
	return concerts, nil
}

// The venue of every concert of this band, one entry per concert
func (b *Band) Venues(ctx context.Context, db bun.IDB) ([]*Venue, error) {
	concerts, err := listConcerts(ctx, db, "concert.band_id = ?", b.ID)
	if err != nil {
		return nil, fmt.Errorf("Band.Venues: %w", err)
	}
	venues := make([]*Venue, 0, len(concerts))
	for _, concert := range concerts {
		venues = append(venues, concert.Venue)
	}
	return venues, nil
}

// Builds an unsaved concert of this band at the venue, call Insert to persist it
func (b *Band) PlayInVenue(venue *Venue, date string) *Concert {
	concert := &Concert{
		Date:   date,
		BandID: b.ID,
		Band:   b,
		Venue:  venue,
	}
	if venue != nil {
		concert.VenueID = venue.ID
	}
	return concert
}

func (b *Band) AllIntroductions(ctx context.Context, db bun.IDB) ([]string, error) {
	concerts, err := listConcerts(ctx, db, "concert.band_id = ?", b.ID)
	if err != nil {
		return nil, fmt.Errorf("Band.AllIntroductions: %w", err)
	}
	intros := make([]string, 0, len(concerts))
	for _, concert := range concerts {
		intros = append(intros, concert.Introduction())
	}
	return intros, nil
}

// The band with the most concerts. Ties go to the lowest band id, bands
// without any concert are never picked. Returns nil when there are no concerts.
func MostPerformances(ctx context.Context, db bun.IDB) (*Band, error) {
	band := new(Band)
	if err := db.NewSelect().
		Model(band).
		Join("JOIN concerts AS concert ON concert.band_id = band.id").
		GroupExpr("band.id").
		OrderExpr("COUNT(concert.id) DESC").
		OrderExpr("band.id ASC").
		Limit(1).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("MostPerformances: %w", err)
	}
	return band, nil
}
