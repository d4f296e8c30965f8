package logger

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// sampleGate passes every Nth debug event through. N of zero or one disables
// sampling and lets everything pass.
type sampleGate struct {
	every   atomic.Int64
	counter atomic.Int64
}

func newSampleGate(every int) *sampleGate {
	g := &sampleGate{}
	g.SetEvery(every)
	return g
}

// SetEvery reconfigures the gate and restarts its cycle.
func (g *sampleGate) SetEvery(every int) {
	if every < 0 {
		every = 0
	}
	g.every.Store(int64(every))
	g.counter.Store(0)
}

// Allow reports whether the current debug event passes the gate.
func (g *sampleGate) Allow() bool {
	every := g.every.Load()
	if every <= 1 {
		return true
	}
	return g.counter.Add(1)%every == 1
}

// parseSampleEvery reads specs like "1/50" or "50" as "one event in fifty".
// Unparsable or empty specs disable sampling.
func parseSampleEvery(spec string) int {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0
	}
	if num, den, ok := strings.Cut(spec, "/"); ok {
		n, errN := strconv.Atoi(strings.TrimSpace(num))
		d, errD := strconv.Atoi(strings.TrimSpace(den))
		if errN != nil || errD != nil || n <= 0 || d <= 0 {
			return 0
		}
		if n >= d {
			return 1
		}
		return d / n
	}
	if v, err := strconv.Atoi(spec); err == nil && v > 0 {
		return v
	}
	return 0
}
