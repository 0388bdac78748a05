package drawer

import (
	"time"

	"github.com/tagwerk/tagwerk/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStage adds a stage to the pipeline drawer.
	AddStage(stageName string) error
	// AddLink adds a link between parent and child stages.
	AddLink(parentStageName, childStageName string) error
	// SetElapsed annotates a stage with its wall-clock time.
	SetElapsed(stageName string, elapsed time.Duration) error
	// AddMeasure adds a measure to the pipeline drawer.
	AddMeasure(msr measure.Measure) error
	// Draw creates a file with the pipeline graph.
	Draw() error
}
