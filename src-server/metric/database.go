package metric

import (
	"context"
	"time"

	"concertdb/src-server/model"

	"github.com/uptrace/bun"
)

// Latency of a read that matches nothing
func database(ctx context.Context, db bun.IDB) (time.Duration, error) {
	start := time.Now()
	if _, err := db.NewSelect().
		Model((*model.Band)(nil)).
		Where("band.id = ?", 0).
		Exists(ctx); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
