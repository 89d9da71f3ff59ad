package health

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/MKhiriev/go-api-starter/models"
)

const bytesPerMB = 1024 * 1024

// collectSystemMetrics gathers the host memory/CPU snapshot embedded in the
// detailed health check. Any collector failure is returned to the caller,
// which reports the snapshot as unhealthy instead of propagating.
func (c *Checker) collectSystemMetrics(ctx context.Context) (*models.SystemMetrics, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("error collecting memory metrics: %w", err)
	}

	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("error counting CPU cores: %w", err)
	}

	// interval 0: usage since the previous call, non-blocking
	percentages, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, fmt.Errorf("error collecting CPU metrics: %w", err)
	}

	var usage float64
	if len(percentages) > 0 {
		usage = math.Round(percentages[0]*100) / 100
	}

	return &models.SystemMetrics{
		Memory: models.MemoryMetrics{
			Used:       vm.Used / bytesPerMB,
			Total:      vm.Total / bytesPerMB,
			Percentage: math.Round(vm.UsedPercent*100) / 100,
		},
		CPU: models.CPUMetrics{
			Usage: usage,
			Cores: cores,
		},
		Process: models.ProcessMetrics{
			Uptime: c.uptime(),
			PID:    os.Getpid(),
		},
	}, nil
}
