// Package sessions lists logged-in users. It probes `who` first, then
// gopsutil's utmp reader, then systemd-logind over dbus, and reports an
// empty list when every source is unavailable.
package sessions

import (
	"context"
	"time"

	"github.com/coreos/go-systemd/v22/login1"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/xlmriosx/server-stats/internal/command"
	"github.com/xlmriosx/server-stats/internal/parse"
)

// List holds the logged-in sessions and the probe that produced them
type List struct {
	Sessions []parse.Session
	Source   string
}

// Collector gathers logged-in sessions
type Collector struct {
	runner *command.Runner
}

// NewCollector creates a session collector using the given command runner
func NewCollector(runner *command.Runner) *Collector {
	return &Collector{runner: runner}
}

// Collect returns the current sessions from the first answering source.
// Zero sessions with an empty source means no source answered; zero
// sessions with a source set means the host genuinely has none.
func (c *Collector) Collect(ctx context.Context) List {
	if out, err := c.runner.Output(ctx, "who"); err == nil {
		return List{Sessions: parse.Sessions(out), Source: "who"}
	}

	if users, err := host.Users(); err == nil {
		sessions := make([]parse.Session, 0, len(users))
		for _, u := range users {
			sessions = append(sessions, parse.Session{
				User:      u.User,
				TTY:       u.Terminal,
				LoginTime: time.Unix(int64(u.Started), 0).Format("2006-01-02 15:04"),
				Host:      u.Host,
			})
		}
		return List{Sessions: sessions, Source: "utmp"}
	}

	if sessions, err := logindSessions(); err == nil {
		return List{Sessions: sessions, Source: "logind"}
	}

	return List{}
}

// logindSessions asks systemd-logind for the active session list
func logindSessions() ([]parse.Session, error) {
	conn, err := login1.New()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	list, err := conn.ListSessions()
	if err != nil {
		return nil, err
	}

	sessions := make([]parse.Session, 0, len(list))
	for _, s := range list {
		sessions = append(sessions, parse.Session{
			User: s.User,
			TTY:  s.ID,
		})
	}
	return sessions, nil
}
