package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultDir is where generated charts go
var DefaultDir = filepath.Join("input", "charts")

// GenerateChartPath creates a timestamped chart filename in dir
func GenerateChartPath(dir string) string {
	if dir == "" {
		dir = DefaultDir
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("chart_%s.yaml", timestamp))
}

// FindLatestChart finds the most recent chart file in dir
func FindLatestChart(dir string) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read charts directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var charts []candidate
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		charts = append(charts, candidate{path: filepath.Join(dir, entry.Name()), modTime: info.ModTime()})
	}

	if len(charts) == 0 {
		return "", fmt.Errorf("no chart files found in %s", dir)
	}

	// Newest first
	sort.Slice(charts, func(i, j int) bool {
		return charts[i].modTime.After(charts[j].modTime)
	})

	return charts[0].path, nil
}
