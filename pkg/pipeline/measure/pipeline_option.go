package measure

import (
	"time"

	"github.com/tagwerk/tagwerk/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	return nil
}

func (pm *pipelineMeasure) PrepareStage(parent, stage *model.StageInfo) error {
	pm.AddMetric(stage.Name)

	return nil
}

func (pm *pipelineMeasure) PrepareSink(parent *model.StageInfo) error {
	return nil
}

func (pm *pipelineMeasure) OnStageDone(stage *model.StageInfo, elapsed time.Duration) error {
	mt := pm.GetMetric(stage.Name)
	if mt != nil {
		mt.SetTotalDuration(elapsed)
	}

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

// PipelineMeasure records per-stage wall-clock durations into msr.
func PipelineMeasure(msr Measure) model.PipelineOption {
	return &pipelineMeasure{msr}
}
