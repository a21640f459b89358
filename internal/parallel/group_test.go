package parallel

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestRunExecutesAllTasks(t *testing.T) {
	var done atomic.Int32
	tasks := make([]func() error, 17)
	for i := range tasks {
		tasks[i] = func() error {
			done.Add(1)
			return nil
		}
	}
	if err := Run(4, tasks); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if got := done.Load(); got != 17 {
		t.Errorf("ran %d tasks, want 17", got)
	}
}

func TestRunReturnsLowestIndexedError(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	tasks := []func() error{
		func() error { return nil },
		func() error { return errA },
		func() error { return errB },
	}
	if err := Run(2, tasks); !errors.Is(err, errA) {
		t.Errorf("Run returned %v, want %v", err, errA)
	}
}

func TestRunAllTasksRunDespiteFailure(t *testing.T) {
	var done atomic.Int32
	tasks := []func() error{
		func() error { return errors.New("boom") },
		func() error { done.Add(1); return nil },
		func() error { done.Add(1); return nil },
	}
	if err := Run(1, tasks); err == nil {
		t.Fatal("Run returned nil, want error")
	}
	if got := done.Load(); got != 2 {
		t.Errorf("ran %d healthy tasks, want 2", got)
	}
}

func TestRunRecoversPanic(t *testing.T) {
	tasks := []func() error{
		func() error { panic("kaboom") },
		func() error { return nil },
	}
	err := Run(2, tasks)
	if err == nil {
		t.Fatal("Run returned nil after panic")
	}
	if !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("panic message lost: %v", err)
	}
}

func TestRunEmptyAndDefaults(t *testing.T) {
	if err := Run(0, nil); err != nil {
		t.Errorf("empty task list returned %v", err)
	}
	ran := false
	if err := Run(-1, []func() error{func() error { ran = true; return nil }}); err != nil {
		t.Errorf("Run with default workers returned %v", err)
	}
	if !ran {
		t.Error("task did not run with default worker count")
	}
}
