package metrics

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

// Host retrieves system identification information
func (c *Collector) Host() (HostInfo, error) {
	info, err := host.Info()
	if err != nil {
		return HostInfo{}, fmt.Errorf("failed to get host info: %w", err)
	}

	return HostInfo{
		Hostname:      info.Hostname,
		Platform:      info.Platform,
		OSPretty:      fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion),
		KernelVersion: info.KernelVersion,
		Uptime:        info.Uptime,
		UptimeHuman:   FormatUptime(info.Uptime),
		BootTime:      info.BootTime,
	}, nil
}

// FormatUptime converts uptime seconds to human readable form
func FormatUptime(seconds uint64) string {
	duration := time.Duration(seconds) * time.Second

	days := int(duration.Hours() / 24)
	hours := int(duration.Hours()) % 24
	minutes := int(duration.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%d days, %d hours, %d minutes", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%d hours, %d minutes", hours, minutes)
	}
	return fmt.Sprintf("%d minutes", minutes)
}
