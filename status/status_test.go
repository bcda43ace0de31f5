package status

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestMetricMapPointerStable verifies repeated Get returns the cached pointer
func TestMetricMapPointerStable(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	p := m.Get(KeyFrames)
	p.Store(7)
	assert.Same(t, p, m.Get(KeyFrames))
	assert.Equal(t, int64(7), m.Get(KeyFrames).Load())
	assert.True(t, m.Has(KeyFrames))
	assert.False(t, m.Has(KeyAgents))
	assert.Equal(t, 1, m.Count())
}

// TestMetricMapConcurrentGet verifies concurrent first use yields one pointer
func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get("shared").Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(32), m.Get("shared").Load())
	assert.Equal(t, 1, m.Count())
}

// TestMetricMapRangeSorted verifies key-ordered iteration
func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	for _, k := range []string{"c", "a", "b"} {
		m.Get(k)
	}
	var keys []string
	m.Range(func(k string, _ *AtomicFloat) { keys = append(keys, k) })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

// TestAtomicFloat verifies Set, Add and StoreMax
func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat
	assert.Zero(t, f.Get())
	f.Set(1.5)
	assert.Equal(t, 2.0, f.Add(0.5))
	assert.Equal(t, 2.0, f.StoreMax(1))
	assert.Equal(t, 3.0, f.StoreMax(3))
	assert.Equal(t, 3.0, f.Get())
}

// TestAtomicStringTruncates verifies storage bound
func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Empty(t, s.Load())
	s.Store("123e4567-e89b-12d3-a456-426614174000")
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", s.Load())
	s.Store(strings.Repeat("x", 100))
	assert.Len(t, s.Load(), MaxStringLen)
}

// TestRegistryFields verifies typed zap fields for every metric
func TestRegistryFields(t *testing.T) {
	r := NewRegistry()
	r.Bools.Get(KeyRunning).Store(true)
	r.Ints.Get(KeyAgents).Store(20)
	r.Floats.Get(KeyMeanCapture).Set(0.25)
	r.Strings.Get(KeyRunID).Store("abc")
	require.Equal(t, 4, r.TotalCount())

	core, logs := observer.New(zapcore.InfoLevel)
	zap.New(core).Info("stats", r.Fields()...)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, true, ctx[KeyRunning])
	assert.Equal(t, int64(20), ctx[KeyAgents])
	assert.Equal(t, 0.25, ctx[KeyMeanCapture])
	assert.Equal(t, "abc", ctx[KeyRunID])
}

// TestRegistryMarshalLogObject verifies inline object logging
func TestRegistryMarshalLogObject(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyFrames).Store(3)

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, r.MarshalLogObject(enc))
	assert.Equal(t, int64(3), enc.Fields[KeyFrames])
}
