package measure

import "time"

type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

type Metric interface {
	SetTotalDuration(elapsed time.Duration)
	GetTotalDuration() time.Duration
}
