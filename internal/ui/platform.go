package ui

import (
	"context"
	"os/exec"
)

// Spawner starts an external process without waiting for it.
type Spawner interface {
	Spawn(name string, args ...string) error
}

// SpawnFunc adapts a function to Spawner.
type SpawnFunc func(name string, args ...string) error

func (f SpawnFunc) Spawn(name string, args ...string) error { return f(name, args...) }

// ExecSpawner runs commands with os/exec. The child is reaped in the
// background so it never becomes a zombie.
type ExecSpawner struct{}

// Spawn starts the command and returns once it is running.
// Uses a detached context since the child process outlives the caller.
func (ExecSpawner) Spawn(name string, args ...string) error {
	cmd := exec.CommandContext(context.Background(), name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
