package utils

import (
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/cpu"
)

// CPUUsage returns the CPU usage percentage since the last call.
// Non-blocking, suitable for metrics collectors.
func CPUUsage() float64 {
	percentage, err := cpu.Percent(0, false)
	if err != nil {
		log.Error().Err(err).Msg("failed to read cpu usage")
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}
