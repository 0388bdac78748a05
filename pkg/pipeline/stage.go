package pipeline

import (
	"context"
	"io"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/tagwerk/tagwerk/pkg/pipeline/model"
)

// Stage wraps one external executable with an input stream and an output
// stream. The streams are wired by the pipeline; the process runs
// concurrently with the pipeline driver, consuming and producing as data
// flows. A stage never outlives one pipeline run.
type Stage struct {
	info   *model.StageInfo
	stdin  io.Reader
	stdout io.Writer
	cmd    *exec.Cmd
}

// NewStage creates a stage running the executable at path with the given
// arguments.
func NewStage(name, path string, args ...string) *Stage {
	return &Stage{
		info: &model.StageInfo{
			Kind: model.ProcessStageKind,
			Name: name,
			Path: path,
			Args: args,
		},
	}
}

// Info returns the stage descriptor.
func (s *Stage) Info() *model.StageInfo {
	return s.info
}

func (s *Stage) start(ctx context.Context, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, s.info.Path, s.info.Args...) //nolint:gosec //the caller chooses the executables
	cmd.Stdin = s.stdin
	cmd.Stdout = s.stdout
	cmd.Stderr = stderr

	err := cmd.Start()
	if err != nil {
		return &LaunchError{Stage: s.info.Name, Err: err}
	}
	s.cmd = cmd

	return nil
}

// wait reaps the stage process. A non-zero exit becomes a StageError; a
// stage killed by context cancellation surfaces the context error
// instead, so a timeout is not mistaken for a collaborator failure.
func (s *Stage) wait(ctx context.Context) error {
	err := s.cmd.Wait()
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return errors.Wrapf(ctx.Err(), "stage %s", s.info.Name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &StageError{Stage: s.info.Name, ExitCode: exitErr.ExitCode()}
	}

	return errors.Wrapf(err, "stage %s", s.info.Name)
}

// kill tears down a running stage when a later stage fails to launch.
func (s *Stage) kill() {
	if s.cmd == nil || s.cmd.Process == nil {
		return
	}
	_ = s.cmd.Process.Kill()
	_ = s.cmd.Wait()
}
