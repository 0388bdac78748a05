package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tagwerk/tagwerk/pkg/pipeline/measure"
	"github.com/tagwerk/tagwerk/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	msr       measure.Measure
	startTime time.Time
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStage(model.SourceStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add source stage to drawer")
	}

	err = pd.AddStage(model.SinkStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add sink stage to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareStage(parent, stage *model.StageInfo) error {
	err := pd.AddStage(stage.Name)
	if err != nil {
		return err
	}

	err = pd.AddLink(parent.Name, stage.Name)
	if err != nil {
		return err
	}

	return nil
}

func (pd *pipelineDrawer) PrepareSink(parent *model.StageInfo) error {
	err := pd.AddLink(parent.Name, model.SinkStage.Name)
	if err != nil {
		return err
	}

	return nil
}

func (pd *pipelineDrawer) OnStageDone(stage *model.StageInfo, elapsed time.Duration) error {
	err := pd.SetElapsed(stage.Name, elapsed)
	if err != nil {
		return err
	}

	return nil
}

func (pd *pipelineDrawer) Finish() error {
	if pd.msr != nil {
		err := pd.SetElapsed(model.SinkStage.Name, time.Since(pd.startTime))
		if err != nil {
			return errors.Wrap(err, "unable to set total time")
		}

		err = pd.AddMeasure(pd.msr)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the pipeline stage graph to a file once the run
// finishes. A non-nil measure annotates and colours the stages with their
// wall-clock times.
func PipelineDrawer(drawer Drawer, msr measure.Measure) model.PipelineOption {
	return &pipelineDrawer{drawer, msr, time.Now()}
}
