package measure

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// DefaultMeasure collects one metric per pipeline stage.
type DefaultMeasure struct {
	Stages map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Stages: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	mt := &DefaultMetric{
		mu: &sync.Mutex{},
	}
	m.Stages[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	return m.Stages[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	return m.Stages
}

// WriteSummary writes a line per stage with its total wall-clock time,
// longest first.
func WriteSummary(wrt io.Writer, msr Measure) error {
	all := msr.AllMetrics()

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		di, dj := all[names[i]].GetTotalDuration(), all[names[j]].GetTotalDuration()
		if di != dj {
			return di > dj
		}

		return names[i] < names[j]
	})

	for _, name := range names {
		_, err := fmt.Fprintf(wrt, "%s\t%s\n", name, round(all[name].GetTotalDuration()))
		if err != nil {
			return err
		}
	}

	return nil
}

var _ Measure = (*DefaultMeasure)(nil)
