package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopByCPU(t *testing.T) {
	l := NewLister()

	infos, err := l.TopByCPU(5)
	require.NoError(t, err)
	require.NotEmpty(t, infos)
	assert.LessOrEqual(t, len(infos), 5)

	for i := 1; i < len(infos); i++ {
		assert.GreaterOrEqual(t, infos[i-1].CPUPercent, infos[i].CPUPercent)
	}
}

func TestTopByMemory(t *testing.T) {
	l := NewLister()

	infos, err := l.TopByMemory(5)
	require.NoError(t, err)
	require.NotEmpty(t, infos)
	assert.LessOrEqual(t, len(infos), 5)

	for i := 1; i < len(infos); i++ {
		assert.GreaterOrEqual(t, infos[i-1].MemPercent, infos[i].MemPercent)
	}

	// the test process itself must be visible
	for _, info := range infos {
		assert.NotZero(t, info.PID)
	}
}

func TestTopCapsAtListLength(t *testing.T) {
	assert.Len(t, top([]Info{{PID: 1}, {PID: 2}}, 5), 2)
	assert.Len(t, top([]Info{{PID: 1}, {PID: 2}, {PID: 3}}, 2), 2)
	assert.Empty(t, top(nil, 5))
}
