package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NicholasChin28/osu/internal/chart"
)

func run(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("osuscroll %v failed: %v", args, err)
	}
}

func TestGenerateExtentPreview(t *testing.T) {
	dir := t.TempDir()
	chartPath := filepath.Join(dir, "charts", "demo.yaml")

	run(t, "generate", "-o", chartPath, "--count", "20", "--duration", "5000", "--seed", "7")

	c, err := chart.ReadChart(chartPath)
	if err != nil {
		t.Fatalf("generated chart is invalid: %v", err)
	}
	if len(c.HitObjects) != 20 {
		t.Errorf("Expected 20 objects, got %d", len(c.HitObjects))
	}

	run(t, "extent", "--chart", chartPath, "--at", "1500", "--log-level", "error")
	run(t, "extent", "--chart", chartPath, "--at", "1500", "--yaml")

	previewDir := filepath.Join(dir, "preview")
	run(t, "preview", "--chart", chartPath, "--from", "0", "--to", "100", "--fps", "20",
		"--width", "60", "--height", "100", "-o", previewDir)

	entries, err := os.ReadDir(previewDir)
	if err != nil {
		t.Fatal(err)
	}
	// 0, 50, 100
	if len(entries) != 3 {
		t.Errorf("Expected 3 frames, got %d", len(entries))
	}
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	rootCmd.SetArgs([]string{"extent", "--chart", "missing.yaml", "--range", "750"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("Expected error for missing chart")
	}

	if cfg.ChartPath != "missing.yaml" || cfg.VisibleTimeRange != 750 {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	if cfg.PostTime != 500 {
		t.Errorf("Unset flag should keep the default, got %f", cfg.PostTime)
	}
}
