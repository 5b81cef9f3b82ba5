package system

import (
	"os"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HostStats is a snapshot of the machine the engine runs on
type HostStats struct {
	LogicalCPUs    int
	MemTotal       uint64
	MemUsedPercent float64
	ProcessRSS     uint64
}

// ReadHostStats collects CPU and memory figures for the performance report
func ReadHostStats() (HostStats, error) {
	var s HostStats

	cpus, err := cpu.Counts(true)
	if err != nil {
		return s, err
	}
	s.LogicalCPUs = cpus

	vm, err := mem.VirtualMemory()
	if err != nil {
		return s, err
	}
	s.MemTotal = vm.Total
	s.MemUsedPercent = vm.UsedPercent

	// RSS is optional: some sandboxes hide /proc/self
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := p.MemoryInfo(); err == nil {
			s.ProcessRSS = info.RSS
		}
	}

	return s, nil
}

// RecommendedWorkers caps a requested worker count at the logical CPU count
func RecommendedWorkers(requested int) int {
	cpus, err := cpu.Counts(true)
	if err != nil || cpus <= 0 {
		cpus = 1
	}
	if requested <= 0 || requested > cpus {
		return cpus
	}
	return requested
}
