package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NicholasChin28/osu/internal/config"
	"github.com/NicholasChin28/osu/internal/engine"
	"github.com/NicholasChin28/osu/internal/inspect"
	"github.com/NicholasChin28/osu/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Play the chart in real time and serve the layout over HTTP",
	Long: `Play the chart against the wall clock and expose:
  GET    /healthz        liveness
  GET    /layout         the latest frame as JSON
  GET    /metrics        Prometheus metrics
  POST   /objects        schedule a hit object
  DELETE /objects/{id}   remove a hit object`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyPlaybackFlags(cmd, cfg)

		c, err := loadChart()
		if err != nil {
			return err
		}

		m := metrics.New()
		session, err := engine.NewSession(cfg, c, log, m)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := inspect.New(session, m, log, inspect.WithStartTime(cfg.StartTime))
		if err := srv.ListenAndServe(ctx, cfg.Addr, cfg.FPS); err != nil {
			return err
		}
		log.Info("server stopped")
		return nil
	},
}

func init() {
	d := config.Default()
	f := serveCmd.Flags()
	f.String("addr", d.Addr, "Адрес HTTP сервера")
	f.Float64("from", d.StartTime, "Время чарта при старте (мс)")
	f.Int("fps", d.FPS, "Частота обновления")
}
