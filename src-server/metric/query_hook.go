package metric

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/uptrace/bun"
)

// Records the latency of every query bun runs
type QueryHook struct {
	read     prometheus.Gauge
	write    prometheus.Gauge
	queries  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

var _ bun.QueryHook = (*QueryHook)(nil)

func NewQueryHook(reg prometheus.Registerer) *QueryHook {
	factory := promauto.With(reg)
	return &QueryHook{
		read: factory.NewGauge(prometheus.GaugeOpts{
			Name: "concertdb_database_read_microsec",
			Help: "The latency of the last database read in microseconds",
		}),
		write: factory.NewGauge(prometheus.GaugeOpts{
			Name: "concertdb_database_write_microsec",
			Help: "The latency of the last database write in microseconds",
		}),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "concertdb_database_queries_total",
			Help: "Number of database queries by operation",
		}, []string{"operation"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "concertdb_database_query_errors_total",
			Help: "Number of failed database queries by operation",
		}, []string{"operation"}),
	}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	latency := float64(time.Since(event.StartTime).Microseconds())
	operation := event.Operation()

	h.queries.WithLabelValues(operation).Inc()
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		h.failures.WithLabelValues(operation).Inc()
	}

	switch operation {
	case "SELECT":
		h.read.Set(latency)
	case "INSERT", "UPDATE", "DELETE":
		h.write.Set(latency)
	}
}
