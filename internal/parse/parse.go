// Package parse extracts structured values from the text output of the
// classic system utilities (top, free, df, ps, uptime, who, lastb, ss).
// Parsers are pure: they accept raw tool output and return a value or an
// error, never touching the system themselves.
package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// MemStats holds the byte counts from a memory summary line
type MemStats struct {
	Total     uint64
	Used      uint64
	Available uint64
}

// SwapStats holds the byte counts from a swap summary line
type SwapStats struct {
	Total uint64
	Used  uint64
}

// DiskRow is one filesystem line from df
type DiskRow struct {
	Filesystem  string
	Total       uint64
	Used        uint64
	Available   uint64
	UsedPercent float64
	Mountpoint  string
}

// ProcRow is one process line from ps, with Percent holding either the
// CPU or memory share depending on which listing produced it.
type ProcRow struct {
	PID     int32
	User    string
	Percent float64
	Command string
}

// Session is one logged-in session line from who
type Session struct {
	User      string
	TTY       string
	LoginTime string
	Host      string
}

// CPUIdle extracts the idle percentage from the %Cpu(s) summary line of
// `top -bn1`. The caller derives usage as 100 - idle.
func CPUIdle(topOutput string) (float64, error) {
	for _, line := range strings.Split(topOutput, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(trimmed, "Cpu(s):") {
			continue
		}
		// %Cpu(s):  1.2 us,  0.6 sy,  0.0 ni, 98.0 id,  0.1 wa, ...
		after := trimmed[strings.Index(trimmed, "Cpu(s):")+len("Cpu(s):"):]
		for _, part := range strings.Split(after, ",") {
			fields := strings.Fields(part)
			if len(fields) == 2 && fields[1] == "id" {
				idle, err := strconv.ParseFloat(fields[0], 64)
				if err != nil {
					return 0, fmt.Errorf("bad idle field %q: %w", fields[0], err)
				}
				return idle, nil
			}
		}
		return 0, fmt.Errorf("no idle field in cpu line %q", trimmed)
	}
	return 0, fmt.Errorf("cpu summary line not found")
}

// Memory extracts total/used/available bytes from the Mem row of `free -b`
func Memory(freeOutput string) (MemStats, error) {
	fields, err := freeRow(freeOutput, "Mem:")
	if err != nil {
		return MemStats{}, err
	}
	// Mem: total used free shared buff/cache available
	if len(fields) < 7 {
		return MemStats{}, fmt.Errorf("mem row has %d fields, want 7", len(fields))
	}
	total, err1 := strconv.ParseUint(fields[1], 10, 64)
	used, err2 := strconv.ParseUint(fields[2], 10, 64)
	avail, err3 := strconv.ParseUint(fields[6], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return MemStats{}, fmt.Errorf("non-numeric mem row: %v", fields)
	}
	return MemStats{Total: total, Used: used, Available: avail}, nil
}

// Swap extracts total/used bytes from the Swap row of `free -b`
func Swap(freeOutput string) (SwapStats, error) {
	fields, err := freeRow(freeOutput, "Swap:")
	if err != nil {
		return SwapStats{}, err
	}
	if len(fields) < 3 {
		return SwapStats{}, fmt.Errorf("swap row has %d fields, want 3", len(fields))
	}
	total, err1 := strconv.ParseUint(fields[1], 10, 64)
	used, err2 := strconv.ParseUint(fields[2], 10, 64)
	if err1 != nil || err2 != nil {
		return SwapStats{}, fmt.Errorf("non-numeric swap row: %v", fields)
	}
	return SwapStats{Total: total, Used: used}, nil
}

func freeRow(freeOutput, label string) ([]string, error) {
	for _, line := range strings.Split(freeOutput, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == label {
			return fields, nil
		}
	}
	return nil, fmt.Errorf("row %q not found", label)
}

// Disk extracts filesystem rows from `df -B1`, keeping only devices with
// the given prefix (typically "/dev/"). Rows that fail to parse are
// skipped rather than failing the whole listing.
func Disk(dfOutput, devicePrefix string) []DiskRow {
	var rows []DiskRow
	for i, line := range strings.Split(dfOutput, "\n") {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 6 || !strings.HasPrefix(fields[0], devicePrefix) {
			continue
		}
		total, err1 := strconv.ParseUint(fields[1], 10, 64)
		used, err2 := strconv.ParseUint(fields[2], 10, 64)
		avail, err3 := strconv.ParseUint(fields[3], 10, 64)
		pct, err4 := strconv.ParseFloat(strings.TrimSuffix(fields[4], "%"), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		rows = append(rows, DiskRow{
			Filesystem:  fields[0],
			Total:       total,
			Used:        used,
			Available:   avail,
			UsedPercent: pct,
			// mount points may contain spaces
			Mountpoint: strings.Join(fields[5:], " "),
		})
	}
	return rows
}

// Processes extracts up to n data rows from
// `ps axo pid,user,%cpu,comm --sort=-%cpu` (or the %mem variant).
// The header row is excluded.
func Processes(psOutput string, n int) ([]ProcRow, error) {
	lines := strings.Split(strings.TrimRight(psOutput, "\n"), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("ps output has no data rows")
	}
	var rows []ProcRow
	for _, line := range lines[1:] {
		if len(rows) == n {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		pid, err1 := strconv.ParseInt(fields[0], 10, 32)
		pct, err2 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		rows = append(rows, ProcRow{
			PID:     int32(pid),
			User:    fields[1],
			Percent: pct,
			Command: strings.Join(fields[3:], " "),
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no parseable process rows")
	}
	return rows, nil
}

// UptimePretty normalizes `uptime -p` output ("up 3 days, 2 hours")
func UptimePretty(output string) (string, error) {
	s := strings.TrimSpace(output)
	if s == "" {
		return "", fmt.Errorf("empty uptime output")
	}
	return strings.TrimPrefix(s, "up "), nil
}

// UptimeClassic extracts the "up ..." portion of plain `uptime` output:
// " 10:02:11 up 3 days, 22:13,  2 users,  load average: 0.10, ..."
func UptimeClassic(output string) (string, error) {
	s := strings.TrimSpace(output)
	idx := strings.Index(s, " up ")
	if idx < 0 {
		return "", fmt.Errorf("no uptime segment in %q", s)
	}
	// keep comma-separated duration parts up to the users count
	var kept []string
	for _, part := range strings.Split(s[idx+4:], ",") {
		p := strings.TrimSpace(part)
		if strings.Contains(p, "user") || strings.Contains(p, "load average") {
			break
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return "", fmt.Errorf("empty uptime segment in %q", s)
	}
	return strings.Join(kept, ", "), nil
}

// LoadAverage extracts the three load figures after "load average:"
func LoadAverage(uptimeOutput string) (load1, load5, load15 float64, err error) {
	const label = "load average:"
	idx := strings.Index(uptimeOutput, label)
	if idx < 0 {
		return 0, 0, 0, fmt.Errorf("no load average in uptime output")
	}
	parts := strings.Split(strings.TrimSpace(uptimeOutput[idx+len(label):]), ",")
	if len(parts) < 3 {
		return 0, 0, 0, fmt.Errorf("load average has %d parts, want 3", len(parts))
	}
	vals := make([]float64, 3)
	for i := 0; i < 3; i++ {
		v, perr := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("bad load figure %q: %w", parts[i], perr)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

// Sessions extracts logged-in sessions from `who` output. A trailing
// "(host)" field becomes the session origin.
func Sessions(whoOutput string) []Session {
	var sessions []Session
	for _, line := range strings.Split(whoOutput, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		s := Session{User: fields[0], TTY: fields[1]}
		rest := fields[2:]
		last := rest[len(rest)-1]
		if strings.HasPrefix(last, "(") && strings.HasSuffix(last, ")") {
			s.Host = strings.Trim(last, "()")
			rest = rest[:len(rest)-1]
		}
		s.LoginTime = strings.Join(rest, " ")
		sessions = append(sessions, s)
	}
	return sessions
}

// FailedLogins extracts up to n record lines from `lastb` output,
// dropping blank lines and the "btmp begins ..." trailer.
func FailedLogins(lastbOutput string, n int) []string {
	var records []string
	for _, line := range strings.Split(lastbOutput, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "btmp begins") {
			continue
		}
		records = append(records, trimmed)
		if len(records) == n {
			break
		}
	}
	return records
}

// ListeningPorts counts sockets in LISTEN state from `ss -tuln` or
// `netstat -tuln` output.
func ListeningPorts(output string) int {
	count := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "LISTEN") {
			count++
		}
	}
	return count
}

// OSRelease extracts PRETTY_NAME from /etc/os-release content
func OSRelease(content string) (string, bool) {
	return releaseField(content, "PRETTY_NAME=")
}

// LSBRelease extracts DISTRIB_DESCRIPTION from /etc/lsb-release content
func LSBRelease(content string) (string, bool) {
	return releaseField(content, "DISTRIB_DESCRIPTION=")
}

func releaseField(content, prefix string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, prefix) {
			v := strings.Trim(strings.TrimPrefix(line, prefix), "\"")
			if v != "" {
				return v, true
			}
		}
	}
	return "", false
}
