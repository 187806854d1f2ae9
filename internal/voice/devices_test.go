package voice

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockOutputPlaysAndEnds(t *testing.T) {
	var mu sync.Mutex
	var starts []float64
	out := NewClockOutput(func(buf Buffer, at float64) {
		mu.Lock()
		defer mu.Unlock()
		starts = append(starts, at)
	})

	var ended atomic.Int32
	buf := Buffer{Samples: make([]float32, 240), SampleRate: OutputSampleRate}
	_, err := out.Play(buf, out.CurrentTime(), func() { ended.Add(1) })
	require.NoError(t, err)

	require.Eventually(t, func() bool { return ended.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 0, out.Active())
	mu.Lock()
	assert.Len(t, starts, 1)
	mu.Unlock()
}

func TestClockOutputStopAndClose(t *testing.T) {
	out := NewClockOutput(nil)
	var ended atomic.Int32
	long := Buffer{Samples: make([]float32, OutputSampleRate), SampleRate: OutputSampleRate}

	p, err := out.Play(long, 0, func() { ended.Add(1) })
	require.NoError(t, err)
	_, err = out.Play(long, 1, func() { ended.Add(1) })
	require.NoError(t, err)
	assert.Equal(t, 2, out.Active())

	p.Stop()
	assert.Equal(t, 1, out.Active())

	require.NoError(t, out.Close())
	assert.Equal(t, 0, out.Active())
	assert.Never(t, func() bool { return ended.Load() > 0 }, 30*time.Millisecond, 5*time.Millisecond)

	_, err = out.Play(long, 0, nil)
	assert.ErrorIs(t, err, errContextClosed)
}

func TestStreamCapture(t *testing.T) {
	c := NewStreamCapture(1)
	assert.True(t, c.Push([]float32{1}))
	assert.Equal(t, []float32{1}, <-c.Frames())

	c.Stop()
	c.Stop()
	assert.True(t, c.Stopped())
	assert.False(t, c.Push([]float32{2}))

	_, err := BridgeDevices{Capture: c}.OpenCapture()
	assert.Error(t, err)
}
