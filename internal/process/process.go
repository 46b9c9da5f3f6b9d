package process

import (
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v4/process"
)

// Lister ranks running processes for the top-N report sections
type Lister struct{}

// NewLister creates a new process lister
func NewLister() *Lister {
	return &Lister{}
}

// TopByCPU returns the n processes using the most CPU, descending
func (l *Lister) TopByCPU(n int) ([]Info, error) {
	infos, err := l.list()
	if err != nil {
		return nil, err
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CPUPercent > infos[j].CPUPercent
	})
	return top(infos, n), nil
}

// TopByMemory returns the n processes using the most memory, descending
func (l *Lister) TopByMemory(n int) ([]Info, error) {
	infos, err := l.list()
	if err != nil {
		return nil, err
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].MemPercent > infos[j].MemPercent
	})
	return top(infos, n), nil
}

func (l *Lister) list() ([]Info, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to get processes: %w", err)
	}

	var infos []Info
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// process exited between listing and inspection
			continue
		}

		username, _ := p.Username()
		cpuPercent, _ := p.CPUPercent()
		memPercent, _ := p.MemoryPercent()

		infos = append(infos, Info{
			PID:        p.Pid,
			Name:       name,
			Username:   username,
			CPUPercent: cpuPercent,
			MemPercent: float64(memPercent),
		})
	}
	return infos, nil
}

func top(infos []Info, n int) []Info {
	if n > len(infos) {
		n = len(infos)
	}
	return infos[:n]
}
