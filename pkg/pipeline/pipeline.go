package pipeline

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/tagwerk/tagwerk/pkg/pipeline/model"
)

// Pipeline is an ordered chain of process stages. Stage i's output stream
// is connected to stage i+1's input stream; the first stage reads the
// configured source and the last stage writes the configured sink.
type Pipeline struct {
	source    io.Reader
	sink      io.Writer
	stderr    io.Writer
	stages    []*Stage
	pipes     []*os.File
	opts      []model.PipelineOption
	startTime time.Time
	ran       bool
}

// New creates a new pipeline reading standard input and writing standard
// output unless SetSource/SetSink say otherwise.
func New(opts ...model.PipelineOption) (*Pipeline, error) {
	pipe := &Pipeline{
		source: os.Stdin,
		sink:   os.Stdout,
		stderr: os.Stderr,
		opts:   opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// SetSource sets the input stream of the first stage.
func (p *Pipeline) SetSource(src io.Reader) {
	p.source = src
}

// SetSink sets the output stream of the last stage.
func (p *Pipeline) SetSink(sink io.Writer) {
	p.sink = sink
}

// SetStderr sets the stream every stage inherits as standard error.
func (p *Pipeline) SetStderr(stderr io.Writer) {
	p.stderr = stderr
}

// Append adds a stage to the end of the chain. No process is started.
func (p *Pipeline) Append(stage *Stage) error {
	if p == nil {
		return ErrPipelineMustBeSet
	}
	if stage == nil {
		return ErrStageMustBeSet
	}

	parent := model.SourceStage
	if len(p.stages) > 0 {
		parent = p.stages[len(p.stages)-1].info
	}

	for _, opt := range p.opts {
		err := opt.PrepareStage(parent, stage.info)
		if err != nil {
			return errors.Wrap(err, "unable to run prepare stage function")
		}
	}

	p.stages = append(p.stages, stage)

	return nil
}

// Stages returns the descriptors of the chain, in order.
func (p *Pipeline) Stages() []*model.StageInfo {
	infos := make([]*model.StageInfo, len(p.stages))
	for i, stage := range p.stages {
		infos[i] = stage.info
	}

	return infos
}

// Run starts every stage concurrently, waits for all of them to exit and
// surfaces the first failure. Cancelling the context kills every stage
// still running. A pipeline runs at most once.
func (p *Pipeline) Run(ctx context.Context) error {
	if len(p.stages) == 0 {
		return ErrEmptyPipeline
	}
	if p.ran {
		return ErrAlreadyRun
	}
	p.ran = true

	for _, opt := range p.opts {
		err := opt.PrepareSink(p.stages[len(p.stages)-1].info)
		if err != nil {
			return errors.Wrap(err, "unable to run prepare sink function")
		}
	}

	err := p.wire()
	if err != nil {
		return err
	}

	p.startTime = time.Now()

	err = p.start(ctx)
	if err != nil {
		return err
	}

	grp := errgroup.Group{}
	for _, stage := range p.stages {
		stage := stage
		grp.Go(func() error {
			waitErr := stage.wait(ctx)
			elapsed := time.Since(p.startTime)

			for _, opt := range p.opts {
				optErr := opt.OnStageDone(stage.info, elapsed)
				if optErr != nil && waitErr == nil {
					waitErr = errors.Wrap(optErr, "unable to run stage done function")
				}
			}

			return waitErr
		})
	}

	// Wait reaps every stage, even the ones still draining after another
	// stage has already failed, and returns the first failure.
	err = grp.Wait()

	// The stage graph is fully known at this point, so options still
	// finish on a failed run. A stage failure outranks a finish failure.
	finishErr := p.finishRun()
	if err != nil {
		return err
	}

	return finishErr
}

// wire connects adjacent stages with anonymous pipes. Each pipe has
// exactly one writer (the upstream stage) and one reader (the downstream
// stage).
func (p *Pipeline) wire() error {
	p.stages[0].stdin = p.source
	p.stages[len(p.stages)-1].stdout = p.sink

	for i := 0; i < len(p.stages)-1; i++ {
		rd, wr, err := os.Pipe()
		if err != nil {
			p.closePipes()

			return errors.Wrap(err, "unable to create pipe")
		}
		p.stages[i].stdout = wr
		p.stages[i+1].stdin = rd
		p.pipes = append(p.pipes, rd, wr)
	}

	return nil
}

func (p *Pipeline) start(ctx context.Context) error {
	for i, stage := range p.stages {
		err := stage.start(ctx, p.stderr)
		if err != nil {
			for _, started := range p.stages[:i] {
				started.kill()
			}
			p.closePipes()

			return err
		}
	}

	// The children hold duplicates of the pipe ends. The parent's copies
	// must go away, or downstream stages never observe end-of-stream.
	p.closePipes()

	return nil
}

func (p *Pipeline) closePipes() {
	for _, file := range p.pipes {
		_ = file.Close()
	}
	p.pipes = nil
}

func (p *Pipeline) finishRun() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
