package system

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthStatusDTO struct {
	Status           string  `json:"status"`
	UptimeSeconds    int64   `json:"uptimeSeconds"`
	CPUUsagePercent  float64 `json:"cpuUsagePercent"`
	MemoryUsedMB     uint64  `json:"memoryUsedMb"`
	MemoryTotalMB    uint64  `json:"memoryTotalMb"`
	MemoryUsePercent float64 `json:"memoryUsePercent"`
}

type HealthService struct {
	startedAt time.Time
}

func NewHealthService() *HealthService {
	return &HealthService{startedAt: time.Now().UTC()}
}

// GetHealthStatus reports process uptime and host resource usage. Stat
// failures degrade to zero values rather than failing the endpoint.
func (s *HealthService) GetHealthStatus() *HealthStatusDTO {
	status := &HealthStatusDTO{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	}

	if memory, err := mem.VirtualMemory(); err == nil {
		status.MemoryUsedMB = memory.Used / 1024 / 1024
		status.MemoryTotalMB = memory.Total / 1024 / 1024
		status.MemoryUsePercent = memory.UsedPercent
	}

	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		status.CPUUsagePercent = percentages[0]
	}

	return status
}
