package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/NicholasChin28/osu/internal/chart"
	"github.com/NicholasChin28/osu/internal/config"
	"github.com/NicholasChin28/osu/internal/logger"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

var (
	cfg *config.Config
	log *slog.Logger

	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "osuscroll",
	Short: "Time-synchronized scrolling layout for rhythm game hit objects",
	Long: `osuscroll lays out timed hit objects along a scroll axis under varying
scroll speed. It can generate charts, print container extents at a point in
time, render preview frames and serve the live layout over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var paths []string
		if envFile != "" {
			paths = append(paths, envFile)
		}
		cfg = config.Load(paths...)
		cfg.BuildVersion = version
		applyFlags(cmd, cfg)

		log = logger.New(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	d := config.Default()
	f := rootCmd.PersistentFlags()
	f.StringVar(&envFile, "env", "", "Путь к .env (по умолчанию: .env в текущей папке)")
	f.String("chart", "", "Путь к чарту (по умолчанию: самый свежий файл в input/charts/)")
	f.String("axes", d.Axes, "Оси прокрутки: x, y, both (по умолчанию: из чарта)")
	f.Float64("range", d.VisibleTimeRange, "Видимый диапазон времени (мс)")
	f.Float64("post-time", d.PostTime, "Сколько объект живет после окончания (мс)")
	f.Int("width", d.Width, "Ширина игрового поля")
	f.Int("height", d.Height, "Высота игрового поля")
	f.String("log-level", d.LogLevel, "Уровень логов: debug, info, warn, error")
	f.String("log-format", d.LogFormat, "Формат логов: text, json")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(extentCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyFlags copies explicitly set flags over the env/default config
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("chart") {
		cfg.ChartPath, _ = f.GetString("chart")
	}
	if f.Changed("axes") {
		cfg.Axes, _ = f.GetString("axes")
	}
	if f.Changed("range") {
		cfg.VisibleTimeRange, _ = f.GetFloat64("range")
	}
	if f.Changed("post-time") {
		cfg.PostTime, _ = f.GetFloat64("post-time")
	}
	if f.Changed("width") {
		cfg.Width, _ = f.GetInt("width")
	}
	if f.Changed("height") {
		cfg.Height, _ = f.GetInt("height")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("log-format") {
		cfg.LogFormat, _ = f.GetString("log-format")
	}
}

// loadChart reads the configured chart, or the newest one in input/charts
func loadChart() (*chart.Chart, error) {
	path := cfg.ChartPath
	if path == "" {
		latest, err := chart.FindLatestChart(chart.DefaultDir)
		if err != nil {
			return nil, fmt.Errorf("%w. Положите чарт в %s/ или запустите osuscroll generate", err, chart.DefaultDir)
		}
		path = latest
		fmt.Printf("[*] Выбран чарт: %s\n", path)
	}
	cfg.ChartPath = path

	c, err := chart.ReadChart(path)
	if err != nil {
		return nil, err
	}
	log.Debug("chart loaded", "path", path, "objects", len(c.HitObjects), "control_points", len(c.Points))
	return c, nil
}

// outputDir returns a timestamped directory under the configured output dir
func outputDir(prefix string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%s", prefix, timestamp))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка: %v\n", err)
		os.Exit(1)
	}
}
