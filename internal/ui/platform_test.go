package ui

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecSpawner_StartsCommand(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	require.NoError(t, ExecSpawner{}.Spawn("true"))
}

func TestExecSpawner_MissingCommand(t *testing.T) {
	err := ExecSpawner{}.Spawn("jsonwatch-no-such-binary")
	require.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestSpawnFunc(t *testing.T) {
	var got []string
	s := SpawnFunc(func(name string, args ...string) error {
		got = append([]string{name}, args...)
		return nil
	})
	require.NoError(t, s.Spawn("tmux", "select-pane"))
	assert.Equal(t, []string{"tmux", "select-pane"}, got)
}
