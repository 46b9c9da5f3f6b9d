package process

// Info represents a running process in the top-N listings
type Info struct {
	PID        int32
	Name       string
	Username   string
	CPUPercent float64
	MemPercent float64
}
