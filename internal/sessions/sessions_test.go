package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xlmriosx/server-stats/internal/command"
)

func TestCollectNeverFails(t *testing.T) {
	c := NewCollector(command.NewRunner(2 * time.Second))

	list := c.Collect(context.Background())

	// Whatever source answered, every row must carry a user
	for _, s := range list.Sessions {
		assert.NotEmpty(t, s.User)
	}
	if list.Source != "" {
		assert.Contains(t, []string{"who", "utmp", "logind"}, list.Source)
	}
}
