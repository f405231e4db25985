package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStep returns a step that appends its name to trace and
// returns err.
func recordingStep(name string, trace *[]string, err error) Step {
	return Step{Name: name, Run: func(_ context.Context, _ *State) error {
		*trace = append(*trace, name)
		return err
	}}
}

func TestPipeline_RunsInOrder(t *testing.T) {
	var trace []string
	p := NewPipeline(
		recordingStep("a", &trace, nil),
		recordingStep("b", &trace, nil),
		recordingStep("c", &trace, nil),
	)

	require.NoError(t, p.Run(context.Background(), &State{}))
	if diff := cmp.Diff([]string{"a", "b", "c"}, trace); diff != "" {
		t.Errorf("step order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"a", "b", "c"}, p.Names())
}

func TestPipeline_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")

	var trace []string
	p := NewPipeline(
		recordingStep("a", &trace, nil),
		recordingStep("b", &trace, boom),
		recordingStep("c", &trace, nil),
	)

	err := p.Run(context.Background(), &State{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, trace)
}

func TestPipeline_CancelledBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var trace []string
	p := NewPipeline(
		Step{Name: "a", Run: func(_ context.Context, _ *State) error {
			trace = append(trace, "a")
			cancel()
			return nil
		}},
		recordingStep("b", &trace, nil),
	)

	err := p.Run(ctx, &State{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a"}, trace)
}

func TestPipeline_StepsShareState(t *testing.T) {
	p := NewPipeline(
		Step{Name: "set", Run: func(_ context.Context, st *State) error {
			st.ProjectName = "demo"
			return nil
		}},
		Step{Name: "check", Run: func(_ context.Context, st *State) error {
			if st.ProjectName != "demo" {
				return errors.New("state not shared")
			}
			return nil
		}},
	)

	assert.NoError(t, p.Run(context.Background(), &State{}))
}
