package metric

import (
	"context"
	"log/slog"
	"time"

	"concertdb/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func databaseEmptyRead(as *utils.AppState, reg prometheus.Registerer, tickerInterval time.Duration) {
	databaseEmptyRead := promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "concertdb_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	slog.Debug("concertdb_database_empty_read_microsec metric registered")

	gracefulShutdownCh := as.CreateGracefulShutdownChan()
	go func() {
		ticker := time.NewTicker(tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gracefulShutdownCh:
				switch reg.Unregister(databaseEmptyRead) {
				case true:
					slog.Debug("concertdb_database_empty_read_microsec metric unregistered")
				case false:
					slog.Warn("concertdb_database_empty_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := database(context.Background(), as.BunDB)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

// Hook query metrics into the database and start the background collectors
func Init(as *utils.AppState, reg prometheus.Registerer) {
	as.BunDB.AddQueryHook(NewQueryHook(reg))
	databaseEmptyRead(as, reg, as.Config.GetMetricCollectionInterval())
}
