package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

func CreateSchema(ctx context.Context, db *bun.DB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []interface{}{
			(*Band)(nil),
			(*Venue)(nil),
		} {
			if _, err := tx.
				NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
		}

		if _, err := tx.
			NewCreateTable().
			Model((*Concert)(nil)).
			IfNotExists().
			ForeignKey(`("band_id") REFERENCES "bands" ("id") ON DELETE RESTRICT`).
			ForeignKey(`("venue_id") REFERENCES "venues" ("id") ON DELETE RESTRICT`).
			Exec(ctx); err != nil {
			return err
		}

		for index, column := range map[string]string{
			"concerts_band_id_idx":  "band_id",
			"concerts_venue_id_idx": "venue_id",
		} {
			if _, err := tx.
				NewCreateIndex().
				Model((*Concert)(nil)).
				Index(index).
				Column(column).
				IfNotExists().
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("CreateSchema: %w", err)
	}

	return nil
}
