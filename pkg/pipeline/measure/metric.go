package measure

import (
	"sync"
	"time"
)

// DefaultMetric holds the wall-clock time between pipeline start and the
// exit of one stage. Stages finish concurrently, so access is guarded.
type DefaultMetric struct {
	mu          *sync.Mutex
	EndDuration time.Duration
}

func (mt *DefaultMetric) SetTotalDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.EndDuration = elapsed
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.EndDuration
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	case d > time.Microsecond:
		d = d.Round(time.Nanosecond)
	}

	return d
}
