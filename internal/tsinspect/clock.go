package tsinspect

// clockTracker accumulates 90 kHz timestamp samples to report the observed
// span of a scan. The delta tolerates one 33-bit wraparound.
type clockTracker struct {
	min uint64
	max uint64
	ok  bool
}

func (t *clockTracker) add(v uint64) {
	if !t.ok {
		t.min = v
		t.max = v
		t.ok = true
		return
	}
	if v < t.min {
		t.min = v
	}
	if v > t.max {
		t.max = v
	}
}

func (t clockTracker) duration() float64 {
	if !t.ok {
		return 0
	}
	return float64(clockDelta(t.min, t.max)) / 90000.0
}

func (t clockTracker) has() bool {
	return t.ok
}

func clockDelta(start, end uint64) uint64 {
	if end < start {
		end += 1 << 33
	}
	return end - start
}
