package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("p must be set")
	ErrStageMustBeSet    = errors.New("stage must be set")
	ErrEmptyPipeline     = errors.New("pipeline has no stages")
	ErrAlreadyRun        = errors.New("pipeline has already run")
)

const (
	exitFailure = 1
	exitUsage   = 2
)

// ConfigError reports an invalid configuration, detected before any
// stage is launched.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// NewConfigError creates a ConfigError with the given reason.
func NewConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// LaunchError reports a stage whose executable could not be started.
// Stages already running when the launch fails are torn down.
type LaunchError struct {
	Stage string
	Err   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("stage %s: unable to launch: %v", e.Stage, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// StageError reports a stage that exited with a non-zero status after
// starting. The pipeline surfaces the status as its own: collaborators
// are deterministic, so the failure is reported, never retried.
type StageError struct {
	Stage    string
	ExitCode int
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: exit status %d", e.Stage, e.ExitCode)
}

// ExitStatus maps a pipeline error to the process exit status. A failed
// stage's own status is mirrored; configuration errors map to the
// conventional usage status; nil maps to zero. A stage killed by a
// signal carries no exit status (ExitCode reports -1) and maps to the
// generic failure status.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) {
		if stageErr.ExitCode > 0 {
			return stageErr.ExitCode
		}

		return exitFailure
	}

	var confErr *ConfigError
	if errors.As(err, &confErr) {
		return exitUsage
	}

	return exitFailure
}
