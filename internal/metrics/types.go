package metrics

// CPUSample is one point-in-time CPU usage reading
type CPUSample struct {
	UsedPercent float64
	IdlePercent float64
}

// MemorySample holds the byte counts the memory section reports
type MemorySample struct {
	Total     uint64
	Used      uint64
	Available uint64
}

// SwapSample holds the byte counts the swap block reports
type SwapSample struct {
	Total uint64
	Used  uint64
}

// DiskPartition represents a single mounted filesystem
type DiskPartition struct {
	Device      string
	Mountpoint  string
	Total       uint64
	Used        uint64
	Available   uint64
	UsedPercent float64
}

// LoadSample holds the 1/5/15 minute load averages
type LoadSample struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

// HostInfo contains system identification information
type HostInfo struct {
	Hostname      string
	Platform      string
	OSPretty      string
	KernelVersion string
	Uptime        uint64
	UptimeHuman   string
	BootTime      uint64
}

// InterfaceCounters holds cumulative traffic for one network interface
type InterfaceCounters struct {
	Name      string
	BytesRecv uint64
	BytesSent uint64
}
