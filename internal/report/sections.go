package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xlmriosx/server-stats/internal/metrics"
	"github.com/xlmriosx/server-stats/internal/parse"
	"github.com/xlmriosx/server-stats/internal/process"
)

func (g *Generator) sectionCPU(ctx context.Context, w io.Writer) {
	header(w, "CPU USAGE")

	used, idle, ok := g.cpuUsage(ctx)
	if ok {
		fmt.Fprintf(w, "CPU Usage: %.2f%%\n", used)
		fmt.Fprintf(w, "CPU Idle: %.2f%%\n", idle)
	} else {
		fmt.Fprintln(w, "CPU Usage: N/A")
	}

	if cores, err := g.system.CoreCount(); err == nil && cores > 0 {
		fmt.Fprintf(w, "CPU Cores: %d\n", cores)
	}
}

// cpuUsage probes `top -bn1` for the idle field, then the native sampler
func (g *Generator) cpuUsage(ctx context.Context) (used, idle float64, ok bool) {
	if out, err := g.runner.Output(ctx, "top", "-bn1"); err == nil {
		if idle, err := parse.CPUIdle(out); err == nil {
			return 100 - idle, idle, true
		}
	}
	if sample, err := g.system.CPU(); err == nil {
		return sample.UsedPercent, sample.IdlePercent, true
	}
	return 0, 0, false
}

func (g *Generator) sectionMemory(ctx context.Context, w io.Writer) {
	header(w, "MEMORY USAGE")

	freeOut, freeErr := g.runner.Output(ctx, "free", "-b")

	mem, memOK := g.memorySample(freeOut, freeErr)
	if !memOK {
		fmt.Fprintln(w, "Memory Usage: N/A")
	} else {
		fmt.Fprintf(w, "Total Memory: %.2f GB\n", bytesToGB(mem.Total))
		if usedPct, ok := percentOf(mem.Used, mem.Total); ok {
			fmt.Fprintf(w, "Memory Usage: %.2f%% (%.2f GB)\n", usedPct, bytesToGB(mem.Used))
		} else {
			fmt.Fprintln(w, "Memory Usage: N/A")
		}
		if availPct, ok := percentOf(mem.Available, mem.Total); ok {
			fmt.Fprintf(w, "Memory Available: %.2f%% (%.2f GB)\n", availPct, bytesToGB(mem.Available))
		} else {
			fmt.Fprintln(w, "Memory Available: N/A")
		}
	}

	swap, swapOK := g.swapSample(freeOut, freeErr)
	switch {
	case !swapOK:
		fmt.Fprintln(w, "Swap: N/A")
	case swap.Total == 0:
		fmt.Fprintln(w, "Swap: Not configured")
	default:
		pct, _ := percentOf(swap.Used, swap.Total)
		fmt.Fprintf(w, "Total Swap: %.2f GB\n", bytesToGB(swap.Total))
		fmt.Fprintf(w, "Swap Usage: %.2f%% (%.2f GB)\n", pct, bytesToGB(swap.Used))
	}
}

func (g *Generator) memorySample(freeOut string, freeErr error) (metrics.MemorySample, bool) {
	if freeErr == nil {
		if m, err := parse.Memory(freeOut); err == nil {
			return metrics.MemorySample{Total: m.Total, Used: m.Used, Available: m.Available}, true
		}
	}
	if m, err := g.system.Memory(); err == nil {
		return m, true
	}
	return metrics.MemorySample{}, false
}

func (g *Generator) swapSample(freeOut string, freeErr error) (metrics.SwapSample, bool) {
	if freeErr == nil {
		if s, err := parse.Swap(freeOut); err == nil {
			return metrics.SwapSample{Total: s.Total, Used: s.Used}, true
		}
	}
	if s, err := g.system.Swap(); err == nil {
		return s, true
	}
	return metrics.SwapSample{}, false
}

func (g *Generator) sectionDisk(ctx context.Context, w io.Writer) {
	header(w, "DISK USAGE")

	parts := g.diskPartitions(ctx)
	if len(parts) == 0 {
		fmt.Fprintln(w, "No filesystems found")
		return
	}

	fmt.Fprintf(w, "%-20s %-10s %-10s %-10s %-8s %s\n",
		"Filesystem", "Size", "Used", "Available", "Use%", "Mounted on")
	for _, p := range parts {
		fmt.Fprintf(w, "%-20s %-10s %-10s %-10s %-7.1f%% %s\n",
			p.Device,
			fmt.Sprintf("%.1fG", bytesToGB(p.Total)),
			fmt.Sprintf("%.1fG", bytesToGB(p.Used)),
			fmt.Sprintf("%.1fG", bytesToGB(p.Available)),
			p.UsedPercent,
			p.Mountpoint)
	}
}

func (g *Generator) diskPartitions(ctx context.Context) []metrics.DiskPartition {
	if out, err := g.runner.Output(ctx, "df", "-B1"); err == nil {
		rows := parse.Disk(out, g.cfg.DiskDevicePrefix)
		if len(rows) > 0 {
			parts := make([]metrics.DiskPartition, 0, len(rows))
			for _, r := range rows {
				parts = append(parts, metrics.DiskPartition{
					Device:      r.Filesystem,
					Mountpoint:  r.Mountpoint,
					Total:       r.Total,
					Used:        r.Used,
					Available:   r.Available,
					UsedPercent: r.UsedPercent,
				})
			}
			return parts
		}
	}
	parts, err := g.system.Disk()
	if err != nil {
		return nil
	}
	return parts
}

func (g *Generator) sectionTopCPU(ctx context.Context, w io.Writer) {
	header(w, fmt.Sprintf("TOP %d PROCESSES BY CPU USAGE", g.cfg.TopProcesses))
	g.writeTopProcesses(ctx, w, "CPU%", "%cpu", g.procs.TopByCPU,
		func(info process.Info) float64 { return info.CPUPercent })
}

func (g *Generator) sectionTopMemory(ctx context.Context, w io.Writer) {
	header(w, fmt.Sprintf("TOP %d PROCESSES BY MEMORY USAGE", g.cfg.TopProcesses))
	g.writeTopProcesses(ctx, w, "MEM%", "%mem", g.procs.TopByMemory,
		func(info process.Info) float64 { return info.MemPercent })
}

// writeTopProcesses renders one top-N table: a ps listing pre-sorted by
// psCol when available, the native lister otherwise.
func (g *Generator) writeTopProcesses(ctx context.Context, w io.Writer, label, psCol string,
	native func(int) ([]process.Info, error), pick func(process.Info) float64) {

	n := g.cfg.TopProcesses
	fmt.Fprintf(w, "%-8s %-12s %-8s %s\n", "PID", "USER", label, "COMMAND")

	if out, err := g.runner.Output(ctx, "ps", "axo", "pid,user,"+psCol+",comm", "--sort=-"+psCol); err == nil {
		if rows, err := parse.Processes(out, n); err == nil {
			for _, r := range rows {
				fmt.Fprintf(w, "%-8d %-12s %-7.2f %s\n", r.PID, r.User, r.Percent, r.Command)
			}
			return
		}
	}

	infos, err := native(n)
	if err != nil {
		fmt.Fprintln(w, "  Process listing not available")
		return
	}
	for _, info := range infos {
		fmt.Fprintf(w, "%-8d %-12s %-7.2f %s\n", info.PID, info.Username, pick(info), info.Name)
	}
}

func (g *Generator) sectionSystemInfo(ctx context.Context, w io.Writer) {
	header(w, "ADDITIONAL SYSTEM INFORMATION")

	fmt.Fprintf(w, "OS: %s\n", g.osIdentity(ctx))
	fmt.Fprintf(w, "Kernel: %s\n", g.kernelVersion(ctx))
	fmt.Fprintf(w, "Uptime: %s\n", g.uptime(ctx))

	load, loadOK := g.loadAverage(ctx)
	if loadOK {
		fmt.Fprintf(w, "Load Average: %.2f, %.2f, %.2f\n", load.Load1, load.Load5, load.Load15)
	} else {
		fmt.Fprintln(w, "Load Average: N/A")
	}

	cores, coresErr := g.system.CoreCount()
	if loadOK && coresErr == nil && cores > 0 {
		fmt.Fprintf(w, "Load per core: %.2f\n", load.Load1/float64(cores))
	} else {
		fmt.Fprintln(w, "Load per core: N/A")
	}

	if info, err := g.system.Host(); err == nil && info.BootTime > 0 {
		fmt.Fprintf(w, "Boot time: %s\n", time.Unix(int64(info.BootTime), 0).Format("2006-01-02 15:04:05"))
	}
}

func (g *Generator) sectionNetwork(ctx context.Context, w io.Writer) {
	header(w, "NETWORK")

	if ifaces, err := g.system.Network(); err == nil && len(ifaces) > 0 {
		fmt.Fprintln(w, "Network Interfaces:")
		for _, iface := range ifaces {
			fmt.Fprintf(w, "  %s: RX: %.2f MB, TX: %.2f MB\n",
				iface.Name,
				float64(iface.BytesRecv)/1024/1024,
				float64(iface.BytesSent)/1024/1024)
		}
	}

	if count, ok := g.listeningPorts(ctx); ok {
		fmt.Fprintf(w, "Listening ports: %d\n", count)
	}
}

func (g *Generator) sectionUsers(ctx context.Context, w io.Writer) {
	header(w, "LOGGED IN USERS")

	list := g.sessions.Collect(ctx)
	for _, s := range list.Sessions {
		fmt.Fprintf(w, "  %s\n", formatSession(s))
	}
	fmt.Fprintf(w, "Total logged in users: %d\n", len(list.Sessions))
}

func (g *Generator) sectionFailedLogins(ctx context.Context, w io.Writer) {
	header(w, "RECENT FAILED LOGIN ATTEMPTS")

	out, err := g.runner.Output(ctx, "lastb", "-n", fmt.Sprint(g.cfg.FailedLoginCount))
	if err != nil {
		fmt.Fprintln(w, "  Unable to retrieve failed login information (may require sudo)")
		return
	}

	records := parse.FailedLogins(out, g.cfg.FailedLoginCount)
	if len(records) == 0 {
		fmt.Fprintln(w, "  No failed login attempts found")
		return
	}
	for _, r := range records {
		fmt.Fprintf(w, "  %s\n", r)
	}
}

func (g *Generator) sectionContainers(ctx context.Context, w io.Writer) {
	if !g.cfg.DockerEnabled {
		return
	}

	header(w, "CONTAINERS")

	if g.containers == nil || !g.containers.IsAvailable(ctx) {
		fmt.Fprintln(w, "Docker: not available")
		return
	}

	list, err := g.containers.ListRunning(ctx)
	if err != nil {
		fmt.Fprintln(w, "Docker: not available")
		return
	}

	fmt.Fprintf(w, "Running containers: %d\n", list.Total)
	for _, c := range list.Containers {
		fmt.Fprintf(w, "  %s (%s) - %s\n", c.Name, c.Image, c.Status)
	}
}

// osIdentity walks the release-metadata fallback chain
func (g *Generator) osIdentity(ctx context.Context) string {
	if content, err := g.readFile("/etc/os-release"); err == nil {
		if name, ok := parse.OSRelease(content); ok {
			return name
		}
	}
	if content, err := g.readFile("/etc/lsb-release"); err == nil {
		if name, ok := parse.LSBRelease(content); ok {
			return name
		}
	}
	if content, err := g.readFile("/etc/redhat-release"); err == nil {
		if name := strings.TrimSpace(content); name != "" {
			return name
		}
	}
	if out, err := g.runner.Output(ctx, "lsb_release", "-d"); err == nil {
		if name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(out), "Description:")); name != "" {
			return name
		}
	}
	if info, err := g.system.Host(); err == nil && info.OSPretty != "" {
		return info.OSPretty
	}
	// last resort: kernel name and version
	if out, err := g.runner.Output(ctx, "uname", "-sr"); err == nil {
		return strings.TrimSpace(out)
	}
	return "Unknown"
}

func (g *Generator) kernelVersion(ctx context.Context) string {
	if out, err := g.runner.Output(ctx, "uname", "-r"); err == nil {
		if v := strings.TrimSpace(out); v != "" {
			return v
		}
	}
	if info, err := g.system.Host(); err == nil && info.KernelVersion != "" {
		return info.KernelVersion
	}
	return "Unknown"
}

func (g *Generator) uptime(ctx context.Context) string {
	if out, err := g.runner.Output(ctx, "uptime", "-p"); err == nil {
		if s, err := parse.UptimePretty(out); err == nil {
			return s
		}
	}
	if out, err := g.runner.Output(ctx, "uptime"); err == nil {
		if s, err := parse.UptimeClassic(out); err == nil {
			return s
		}
	}
	if info, err := g.system.Host(); err == nil {
		return info.UptimeHuman
	}
	return "N/A"
}

func (g *Generator) loadAverage(ctx context.Context) (metrics.LoadSample, bool) {
	if out, err := g.runner.Output(ctx, "uptime"); err == nil {
		if l1, l5, l15, err := parse.LoadAverage(out); err == nil {
			return metrics.LoadSample{Load1: l1, Load5: l5, Load15: l15}, true
		}
	}
	if load, err := g.system.Load(); err == nil {
		return load, true
	}
	return metrics.LoadSample{}, false
}

func (g *Generator) listeningPorts(ctx context.Context) (int, bool) {
	if out, err := g.runner.Output(ctx, "ss", "-tuln"); err == nil {
		return parse.ListeningPorts(out), true
	}
	if out, err := g.runner.Output(ctx, "netstat", "-tuln"); err == nil {
		return parse.ListeningPorts(out), true
	}
	if count, err := g.system.ListeningPorts(); err == nil {
		return count, true
	}
	return 0, false
}
