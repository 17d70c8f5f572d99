package benchmark

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostInfo identifies the machine a sweep ran on.
type HostInfo struct {
	Hostname    string `json:"hostname" yaml:"hostname"`
	OS          string `json:"os" yaml:"os"`
	Platform    string `json:"platform,omitempty" yaml:"platform,omitempty"`
	Arch        string `json:"arch" yaml:"arch"`
	CPUModel    string `json:"cpu_model,omitempty" yaml:"cpu_model,omitempty"`
	LogicalCPUs int    `json:"logical_cpus" yaml:"logical_cpus"`
	MemoryMB    uint64 `json:"memory_mb,omitempty" yaml:"memory_mb,omitempty"`
}

// CollectHost gathers HostInfo. Probes that fail leave their field empty, so
// the result is always usable.
func CollectHost(ctx context.Context) HostInfo {
	info := HostInfo{
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		LogicalCPUs: runtime.NumCPU(),
	}

	if hi, err := host.InfoWithContext(ctx); err == nil {
		info.Hostname = hi.Hostname
		info.Platform = hi.Platform
		if hi.PlatformVersion != "" {
			info.Platform += " " + hi.PlatformVersion
		}
	} else {
		slog.Debug("host info unavailable", "error", err)
	}

	if cpus, err := cpu.InfoWithContext(ctx); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	} else if err != nil {
		slog.Debug("cpu info unavailable", "error", err)
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryMB = vm.Total / 1024 / 1024
	} else {
		slog.Debug("memory info unavailable", "error", err)
	}

	return info
}

// LogValue lets HostInfo be logged as a group.
func (h HostInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("hostname", h.Hostname),
		slog.String("os", h.OS),
		slog.String("arch", h.Arch),
		slog.String("cpu", h.CPUModel),
		slog.Int("cpus", h.LogicalCPUs),
	)
}
