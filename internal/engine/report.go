package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NicholasChin28/osu/internal/system"
)

// Stats summarises a Run
type Stats struct {
	Frames     int
	Elapsed    time.Duration
	Recomputes int
	Mutations  int
}

// FPS is the effective update rate of the run
func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

// Report formats the performance report, with host stats when available
func (s Stats) Report(build, chartPath string) string {
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Chart: %s\n"+
			"Frames: %d\n"+
			"Total Time: %.3fs\n"+
			"Extent recomputes: %d\n"+
			"Queued mutations: %d\n"+
			"Effective FPS: %.2f\n",
		build, filepath.Base(chartPath), s.Frames, s.Elapsed.Seconds(), s.Recomputes, s.Mutations, s.FPS(),
	)

	if host, err := system.ReadHostStats(); err == nil {
		report += fmt.Sprintf("Host: %d CPU | mem %.1f%% used | process RSS %.1f MiB\n",
			host.LogicalCPUs, host.MemUsedPercent, float64(host.ProcessRSS)/(1<<20))
	}

	return report + "----------------------------\n"
}

// AppendBenchmarkLog appends a one-line summary to path
func (s Stats) AppendBenchmarkLog(path, build, chartPath string) error {
	entry := fmt.Sprintf("[%s] Build: %s | Chart: %s | Frames: %d | Total: %.3fs | Recomputes: %d | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		build,
		filepath.Base(chartPath),
		s.Frames,
		s.Elapsed.Seconds(),
		s.Recomputes,
		s.FPS(),
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(entry)
	return err
}
