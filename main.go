package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concertdb/src-server/metric"
	"concertdb/src-server/model"
	"concertdb/src-server/utils"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	// opens the database and creates the schema
	as := utils.NewAppState()

	metric.Init(as, prometheus.DefaultRegisterer)

	func() {
		band, err := model.MostPerformances(context.Background(), as.BunDB)
		switch {
		case err != nil:
			slog.Error("can't get the most performing band", "error", err)
		case band == nil:
			slog.Info("no concerts scheduled yet")
		default:
			slog.Info("most performing band", "id", band.ID, "name", band.Name)
		}
	}()

	// metrics server
	muxer := http.NewServeMux()
	muxer.Handle("GET /metrics", promhttp.Handler())
	server := &http.Server{
		Addr:    ":" + as.Config.GetPort(),
		Handler: muxer,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit", "port", as.Config.GetPort())

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan

	slog.Info("Gracefully shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("can't shut down HTTP server", "error", err)
	}
	as.GracefulShutdown()
}
