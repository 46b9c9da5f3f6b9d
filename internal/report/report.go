// Package report builds the server performance report: a fixed sequence
// of sections printed between an opening and closing banner. Every value
// comes from an ordered probe chain (classic tool text first, native
// collectors second) and no probe failure ever aborts the run.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/xlmriosx/server-stats/config"
	"github.com/xlmriosx/server-stats/internal/command"
	"github.com/xlmriosx/server-stats/internal/docker"
	"github.com/xlmriosx/server-stats/internal/metrics"
	"github.com/xlmriosx/server-stats/internal/parse"
	"github.com/xlmriosx/server-stats/internal/process"
	"github.com/xlmriosx/server-stats/internal/sessions"
)

const banner = "========================================="

// systemSource is the native metrics surface the sections read from
type systemSource interface {
	CPU() (metrics.CPUSample, error)
	CoreCount() (int, error)
	Memory() (metrics.MemorySample, error)
	Swap() (metrics.SwapSample, error)
	Disk() ([]metrics.DiskPartition, error)
	Load() (metrics.LoadSample, error)
	Network() ([]metrics.InterfaceCounters, error)
	ListeningPorts() (int, error)
	Host() (metrics.HostInfo, error)
}

// processSource ranks processes for the top-N sections
type processSource interface {
	TopByCPU(n int) ([]process.Info, error)
	TopByMemory(n int) ([]process.Info, error)
}

// sessionSource lists logged-in users
type sessionSource interface {
	Collect(ctx context.Context) sessions.List
}

// containerSource answers the optional containers section
type containerSource interface {
	IsAvailable(ctx context.Context) bool
	ListRunning(ctx context.Context) (*docker.ContainerList, error)
}

// commandSource runs an external tool and returns its stdout
type commandSource interface {
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// Generator produces the report on a writer
type Generator struct {
	cfg        *config.Config
	runner     commandSource
	system     systemSource
	procs      processSource
	sessions   sessionSource
	containers containerSource
	readFile   func(string) (string, error)
	now        func() time.Time
}

// New wires a generator against the real system
func New(cfg *config.Config) *Generator {
	runner := command.NewRunner(cfg.CommandTimeout)

	g := &Generator{
		cfg:      cfg,
		runner:   runner,
		system:   metrics.NewCollector(),
		procs:    process.NewLister(),
		sessions: sessions.NewCollector(runner),
		readFile: func(path string) (string, error) {
			data, err := os.ReadFile(path)
			return string(data), err
		},
		now: time.Now,
	}

	if cfg.DockerEnabled {
		if mgr, err := docker.NewManager(); err == nil {
			g.containers = mgr
		}
	}

	return g
}

// Generate writes the full report. It never returns an error: a section
// that cannot be collected renders a placeholder and the report goes on.
func (g *Generator) Generate(ctx context.Context, w io.Writer) {
	hostname := g.hostname()

	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "       SERVER PERFORMANCE STATS")
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "Generated on: %s\n", g.now().Format("2006-01-02 15:04:05"))
	if hostname != "" {
		fmt.Fprintf(w, "Hostname: %s\n", hostname)
	}
	fmt.Fprintln(w, banner)

	g.sectionCPU(ctx, w)
	g.sectionMemory(ctx, w)
	g.sectionDisk(ctx, w)
	g.sectionTopCPU(ctx, w)
	g.sectionTopMemory(ctx, w)
	g.sectionSystemInfo(ctx, w)
	g.sectionNetwork(ctx, w)
	g.sectionUsers(ctx, w)
	g.sectionFailedLogins(ctx, w)
	g.sectionContainers(ctx, w)

	fmt.Fprintln(w)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "       END OF REPORT")
	fmt.Fprintln(w, banner)
}

func (g *Generator) hostname() string {
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	if info, err := g.system.Host(); err == nil {
		return info.Hostname
	}
	return ""
}

func header(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "--- %s ---\n", title)
}

// percentOf guards the derived-percentage division against a zero total
func percentOf(part, total uint64) (float64, bool) {
	if total == 0 {
		return 0, false
	}
	return float64(part) * 100 / float64(total), true
}

func bytesToGB(b uint64) float64 {
	return float64(b) / 1024 / 1024 / 1024
}

func formatSession(s parse.Session) string {
	line := fmt.Sprintf("%-8s %-12s %s", s.User, s.TTY, s.LoginTime)
	if s.Host != "" {
		line += fmt.Sprintf(" (%s)", s.Host)
	}
	return line
}
