package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// One band playing one venue on one date
type Concert struct {
	bun.BaseModel `bun:"table:concerts,alias:concert"`

	ID      int64  `bun:"id,pk,autoincrement"`
	Date    string `bun:"date,notnull"`     // required, format is not checked
	BandID  int64  `bun:"band_id,notnull"`  // required
	VenueID int64  `bun:"venue_id,notnull"` // required

	Band  *Band  `bun:"rel:belongs-to,join:band_id=id"`
	Venue *Venue `bun:"rel:belongs-to,join:venue_id=id"`
}

// Persist the concert. Unknown band or venue ids are rejected by the
// foreign key constraints of the store.
func (c *Concert) Insert(ctx context.Context, db bun.IDB) error {
	if c.Band != nil && c.BandID == 0 {
		c.BandID = c.Band.ID
	}
	if c.Venue != nil && c.VenueID == 0 {
		c.VenueID = c.Venue.ID
	}

	switch {
	case c.Date == "":
		return fmt.Errorf("Concert.Insert: date is required")
	case c.BandID == 0:
		return fmt.Errorf("Concert.Insert: band id is required")
	case c.VenueID == 0:
		return fmt.Errorf("Concert.Insert: venue id is required")
	}

	if _, err := db.NewInsert().
		Model(c).
		Exec(ctx); err != nil {
		return fmt.Errorf("Concert.Insert: %w", err)
	}
	return nil
}

// Returns nil if no concert has the given id. Band and Venue are loaded.
func FindConcert(ctx context.Context, db bun.IDB, id int64) (*Concert, error) {
	concert := new(Concert)
	if err := db.NewSelect().
		Model(concert).
		Relation("Band").
		Relation("Venue").
		Where("concert.id = ?", id).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("FindConcert: %w", err)
	}
	return concert, nil
}

// Fill Band and Venue from the stored ids
func (c *Concert) LoadRelations(ctx context.Context, db bun.IDB) error {
	band, err := FindBand(ctx, db, c.BandID)
	if err != nil {
		return fmt.Errorf("Concert.LoadRelations: %w", err)
	}
	if band == nil {
		return fmt.Errorf("Concert.LoadRelations: band %d not found", c.BandID)
	}
	venue, err := FindVenue(ctx, db, c.VenueID)
	if err != nil {
		return fmt.Errorf("Concert.LoadRelations: %w", err)
	}
	if venue == nil {
		return fmt.Errorf("Concert.LoadRelations: venue %d not found", c.VenueID)
	}
	c.Band = band
	c.Venue = venue
	return nil
}

// Whether the band plays in its own hometown. Case sensitive.
func (c *Concert) HometownShow() bool {
	if c.Band == nil || c.Venue == nil {
		return false
	}
	return c.Venue.City == c.Band.Hometown
}

func (c *Concert) Introduction() string {
	if c.Band == nil || c.Venue == nil {
		return ""
	}
	return fmt.Sprintf("Hello %s!!!!! We are %s and we're from %s", c.Venue.City, c.Band.Name, c.Band.Hometown)
}

// Concerts matching the where clause with Band and Venue loaded, ordered by id
func listConcerts(ctx context.Context, db bun.IDB, query string, args ...interface{}) ([]*Concert, error) {
	concerts := make([]*Concert, 0)
	if err := db.NewSelect().
		Model(&concerts).
		Relation("Band").
		Relation("Venue").
		Where(query, args...).
		OrderExpr("concert.id ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return concerts, nil
}
