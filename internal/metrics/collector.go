// Package metrics reads host statistics natively through gopsutil. It is
// the second rung of every probe chain: when the classic tool is missing
// or prints something unparseable, these collectors answer instead.
package metrics

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"

	"github.com/xlmriosx/server-stats/internal/cache"
)

// Collector handles native metric collection. Samples that more than one
// report section consumes flow through the cache so a single report never
// reads the same source twice.
type Collector struct {
	cache *cache.SampleCache
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{cache: cache.NewSampleCache()}
}

// CPU samples total CPU usage over a short window
func (c *Collector) CPU() (CPUSample, error) {
	percent, err := cpu.Percent(200*time.Millisecond, false)
	if err != nil {
		return CPUSample{}, fmt.Errorf("failed to get cpu percent: %w", err)
	}
	if len(percent) == 0 {
		return CPUSample{}, fmt.Errorf("no cpu usage data")
	}

	return CPUSample{
		UsedPercent: percent[0],
		IdlePercent: 100 - percent[0],
	}, nil
}

// CoreCount returns the number of logical CPU cores
func (c *Collector) CoreCount() (int, error) {
	v, err := c.cache.GetOrSet(cache.KeyCores, func() (interface{}, error) {
		return cpu.Counts(true)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count cpus: %w", err)
	}
	return v.(int), nil
}

// Memory returns total/used/available physical memory
func (c *Collector) Memory() (MemorySample, error) {
	vmem, err := c.virtualMemory()
	if err != nil {
		return MemorySample{}, err
	}
	return MemorySample{
		Total:     vmem.Total,
		Used:      vmem.Used,
		Available: vmem.Available,
	}, nil
}

// Swap returns total/used swap
func (c *Collector) Swap() (SwapSample, error) {
	swap, err := mem.SwapMemory()
	if err != nil {
		return SwapSample{}, fmt.Errorf("failed to get swap memory: %w", err)
	}
	return SwapSample{Total: swap.Total, Used: swap.Used}, nil
}

// Disk returns real mounted filesystems, skipping pseudo filesystems
func (c *Collector) Disk() ([]DiskPartition, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk partitions: %w", err)
	}

	var result []DiskPartition
	for _, p := range partitions {
		if p.Fstype == "squashfs" || p.Fstype == "tmpfs" || p.Fstype == "devtmpfs" {
			continue
		}
		usage, err := disk.Usage(p.Mountpoint)
		if err != nil {
			continue
		}
		result = append(result, DiskPartition{
			Device:      p.Device,
			Mountpoint:  p.Mountpoint,
			Total:       usage.Total,
			Used:        usage.Used,
			Available:   usage.Free,
			UsedPercent: usage.UsedPercent,
		})
	}
	return result, nil
}

// Load returns the 1/5/15 minute load averages
func (c *Collector) Load() (LoadSample, error) {
	v, err := c.cache.GetOrSet(cache.KeyLoad, func() (interface{}, error) {
		return load.Avg()
	})
	if err != nil {
		return LoadSample{}, fmt.Errorf("failed to get load average: %w", err)
	}
	avg := v.(*load.AvgStat)
	return LoadSample{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}

// Network returns cumulative traffic per interface, loopback excluded
func (c *Collector) Network() ([]InterfaceCounters, error) {
	counters, err := net.IOCounters(true)
	if err != nil {
		return nil, fmt.Errorf("failed to get network io counters: %w", err)
	}

	var result []InterfaceCounters
	for _, counter := range counters {
		if counter.Name == "lo" {
			continue
		}
		result = append(result, InterfaceCounters{
			Name:      counter.Name,
			BytesRecv: counter.BytesRecv,
			BytesSent: counter.BytesSent,
		})
	}
	return result, nil
}

// ListeningPorts counts sockets in LISTEN state
func (c *Collector) ListeningPorts() (int, error) {
	conns, err := net.Connections("tcp")
	if err != nil {
		return 0, fmt.Errorf("failed to get network connections: %w", err)
	}

	count := 0
	for _, conn := range conns {
		if conn.Status == "LISTEN" {
			count++
		}
	}
	return count, nil
}

func (c *Collector) virtualMemory() (*mem.VirtualMemoryStat, error) {
	v, err := c.cache.GetOrSet(cache.KeyVirtualMemory, func() (interface{}, error) {
		return mem.VirtualMemory()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get virtual memory: %w", err)
	}
	return v.(*mem.VirtualMemoryStat), nil
}
