package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireConnectsAdjacentStages(t *testing.T) {
	pipe, err := New()
	require.NoError(t, err)

	src := strings.NewReader("")
	pipe.SetSource(src)

	require.NoError(t, pipe.Append(NewStage("a", "cat")))
	require.NoError(t, pipe.Append(NewStage("b", "cat")))
	require.NoError(t, pipe.Append(NewStage("c", "cat")))

	require.NoError(t, pipe.wire())
	defer pipe.closePipes()

	// one read end and one write end per adjacent pair
	assert.Len(t, pipe.pipes, 4)

	assert.Equal(t, src, pipe.stages[0].stdin)
	assert.Equal(t, pipe.sink, pipe.stages[2].stdout)
	assert.NotNil(t, pipe.stages[0].stdout)
	assert.NotNil(t, pipe.stages[1].stdin)
	assert.NotNil(t, pipe.stages[1].stdout)
	assert.NotNil(t, pipe.stages[2].stdin)
}

func TestClosePipesResets(t *testing.T) {
	pipe, err := New()
	require.NoError(t, err)

	require.NoError(t, pipe.Append(NewStage("a", "cat")))
	require.NoError(t, pipe.Append(NewStage("b", "cat")))
	require.NoError(t, pipe.wire())

	pipe.closePipes()
	assert.Empty(t, pipe.pipes)
}
