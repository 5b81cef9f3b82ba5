package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NicholasChin28/osu/internal/config"
	"github.com/NicholasChin28/osu/internal/engine"
	"github.com/NicholasChin28/osu/internal/renderer"
	"github.com/NicholasChin28/osu/internal/video"
)

var previewOpts struct {
	output       string
	scale        float64
	benchmarkLog string
	video        string
	encoder      string
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render PNG preview frames over a time window",
	Long: `Play the chart from --from to --to at --fps and write one PNG per frame.
When --to is not set the window ends after the last object has expired.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyPlaybackFlags(cmd, cfg)

		c, err := loadChart()
		if err != nil {
			return err
		}

		session, err := engine.NewSession(cfg, c, log, nil)
		if err != nil {
			return err
		}

		to := cfg.EndTime
		if to <= cfg.StartTime {
			to = c.Length() + cfg.PostTime
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("--- [PROJECT: SCROLL PREVIEW] ---")
		fmt.Printf("[*] Чарт: %s | Объектов: %d\n", cfg.ChartPath, len(c.HitObjects))
		fmt.Printf("[*] Окно: %.0f-%.0f мс @ %d FPS | Поле: %dx%d\n", cfg.StartTime, to, cfg.FPS, cfg.Width, cfg.Height)
		fmt.Println("-----------------------------")

		frames, stats, err := session.Run(ctx, cfg.StartTime, to, cfg.FPS)
		if err != nil {
			return fmt.Errorf("playback: %w", err)
		}

		dir := previewOpts.output
		if dir == "" {
			dir = outputDir("preview")
		}

		r := renderer.NewPreviewRenderer(cfg.Width, cfg.Height, previewOpts.scale, log)
		paths, err := r.RenderFrames(ctx, frames, dir, cfg.Workers)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		if previewOpts.video != "" {
			enc := video.NewFFmpegEncoder()
			if !enc.Available() {
				return fmt.Errorf("ffmpeg not found, cannot write %s", previewOpts.video)
			}
			fmt.Println("[*] Сборка видео...")
			params := video.Params{FPS: cfg.FPS, Encoder: previewOpts.encoder}
			if err := enc.EncodeFrames(ctx, r, frames, previewOpts.video, params); err != nil {
				return fmt.Errorf("encode video: %w", err)
			}
			fmt.Printf("[*] Видео: %s\n", previewOpts.video)
		}

		if cfg.ShowStats {
			fmt.Print(stats.Report(cfg.BuildVersion, cfg.ChartPath))
		}
		if previewOpts.benchmarkLog != "" {
			if err := stats.AppendBenchmarkLog(previewOpts.benchmarkLog, cfg.BuildVersion, cfg.ChartPath); err != nil {
				log.Warn("benchmark log not written", "err", err)
			}
		}

		fmt.Printf("[+++] Успех! Кадров: %d | Папка: %s\n", len(paths), dir)
		return nil
	},
}

// applyPlaybackFlags copies the playback flags shared by preview and serve
func applyPlaybackFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("from") {
		cfg.StartTime, _ = f.GetFloat64("from")
	}
	if f.Changed("to") {
		cfg.EndTime, _ = f.GetFloat64("to")
	}
	if f.Changed("fps") {
		cfg.FPS, _ = f.GetInt("fps")
	}
	if f.Changed("workers") {
		cfg.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("stats") {
		cfg.ShowStats, _ = f.GetBool("stats")
	}
	if f.Changed("addr") {
		cfg.Addr, _ = f.GetString("addr")
	}
}

func init() {
	d := config.Default()
	f := previewCmd.Flags()
	f.Float64("from", d.StartTime, "Начало окна (мс)")
	f.Float64("to", d.EndTime, "Конец окна (мс, 0 - до конца чарта)")
	f.Int("fps", d.FPS, "FPS")
	f.Int("workers", d.Workers, "Потоки")
	f.Bool("stats", d.ShowStats, "Показать отчет о производительности")
	f.Float64Var(&previewOpts.scale, "scale", 1, "Масштаб кадров (например, 0.5)")
	f.StringVarP(&previewOpts.output, "output", "o", "", "Папка для кадров (если пусто, генерируется в output/)")
	f.StringVar(&previewOpts.video, "video", "", "Также собрать кадры в видео через ffmpeg (например, output/preview.mp4)")
	f.StringVar(&previewOpts.encoder, "encoder", "libx264", "Видеокодек: libx264, h264_nvenc, h264_videotoolbox")
	f.StringVar(&previewOpts.benchmarkLog, "benchmark-log", "", "Дописать итоги в лог бенчмарков")
}
