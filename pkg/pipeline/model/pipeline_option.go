package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	// PrepareStage runs when a stage is appended to the pipeline. The
	// parent is the upstream stage, or SourceStage for the first stage.
	PrepareStage(parent, stage *StageInfo) error

	// PrepareSink runs once the pipeline is sealed, with the terminal
	// stage whose output becomes the pipeline output.
	PrepareSink(parent *StageInfo) error

	// OnStageDone runs when a stage process has exited, with the wall
	// clock time between pipeline start and the stage's exit.
	OnStageDone(stage *StageInfo, elapsed time.Duration) error

	// Finish runs after the pipeline is finished.
	Finish() error
}
