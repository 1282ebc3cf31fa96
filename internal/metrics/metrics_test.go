package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/annel0/voxel-engine/internal/render"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineMetrics_Listener(t *testing.T) {
	m := NewEngineMetrics()
	var l world.Listener = m

	l.BlockChanged(1, 2, 3)
	l.BlockChanged(1, 2, 4)
	l.LightColumnChanged(1, 2, 0, 5)
	l.AllChanged()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.blockChanges))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lightChanges))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.allChanges))
}

func TestEngineMetrics_FrameAndTick(t *testing.T) {
	m := NewEngineMetrics()

	m.ObserveFrame(render.FrameStats{Dirty: 12, Rebuilt: 8, Duration: time.Millisecond})
	m.ObserveFrame(render.FrameStats{Dirty: 4, Rebuilt: 4, Duration: time.Millisecond})
	assert.Equal(t, 12.0, testutil.ToFloat64(m.rebuilds))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.dirtyChunks))

	m.ObserveTick(40, 3)
	m.ObserveTick(41, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 81.0, testutil.ToFloat64(m.randomTicks))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.entities))
}

func TestEngineMetrics_Handler(t *testing.T) {
	m := NewEngineMetrics()
	m.ObserveTick(1, 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "voxel_ticks_total 1"), body)
	assert.Contains(t, body, "voxel_chunk_rebuilds_total")
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5с", FormatUptime(5*time.Second))
	assert.Equal(t, "2м 5с", FormatUptime(2*time.Minute+5*time.Second))
	assert.Equal(t, "3ч 0м 1с", FormatUptime(3*time.Hour+time.Second))
	assert.Equal(t, "1д 1ч 0м 0с", FormatUptime(25*time.Hour))
}

func TestProcessStats(t *testing.T) {
	ps, err := NewProcessStats()
	require.NoError(t, err)

	mem, err := ps.MemoryMB()
	require.NoError(t, err)
	assert.Greater(t, mem, 0.0)
	assert.NotEmpty(t, ps.Uptime())
}
