package pipeline_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/tagwerk/tagwerk/pkg/pipeline"
)

func TestExitStatusNil(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, pipeline.ExitStatus(nil))
}

func TestExitStatusStageError(t *testing.T) {
	t.Parallel()

	err := &pipeline.StageError{Stage: "tag", ExitCode: 7}
	assert.Equal(t, 7, pipeline.ExitStatus(err))
	assert.Equal(t, "stage tag: exit status 7", err.Error())
}

func TestExitStatusWrappedStageError(t *testing.T) {
	t.Parallel()

	err := errors.Wrap(&pipeline.StageError{Stage: "tag", ExitCode: 4}, "run")
	assert.Equal(t, 4, pipeline.ExitStatus(err))
}

func TestExitStatusSignalledStage(t *testing.T) {
	t.Parallel()

	// a stage killed by a signal has no exit status of its own
	err := &pipeline.StageError{Stage: "tag", ExitCode: -1}
	assert.Equal(t, 1, pipeline.ExitStatus(err))
}

func TestExitStatusConfigError(t *testing.T) {
	t.Parallel()

	err := pipeline.NewConfigError("flags %s and %s are mutually exclusive", "-n", "-t")
	assert.Equal(t, 2, pipeline.ExitStatus(err))
	assert.Equal(t, "flags -n and -t are mutually exclusive", err.Error())
}

func TestExitStatusOtherError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, pipeline.ExitStatus(assert.AnError))
}

func TestLaunchErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such file or directory")
	err := &pipeline.LaunchError{Stage: "tokenizer", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "tokenizer")
}
