package async

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingRunner struct {
	mu   sync.Mutex
	seen []string
}

func (r *countingRunner) Run(_ context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, job.ReportID)
	return nil
}

func TestQueueProcessesJobs(t *testing.T) {
	runner := &countingRunner{}
	q := NewProcessorQueue(runner, nil, WithWorkers(2), WithQueueSize(8))

	for _, id := range []string{"kielt19_19", "kielt22_04", "kielt23_01"} {
		if err := q.Enqueue(context.Background(), Job{ReportID: id, SubmittedAt: time.Now()}); err != nil {
			t.Fatalf("enqueue %s: %v", id, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if len(runner.seen) != 3 {
		t.Fatalf("processed %d jobs, want 3", len(runner.seen))
	}
}

func TestEnqueueAfterShutdownIsIgnored(t *testing.T) {
	runner := &countingRunner{}
	q := NewProcessorQueue(runner, nil, WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q.Shutdown(ctx)

	if err := q.Enqueue(context.Background(), Job{ReportID: "late"}); err != nil {
		t.Fatalf("enqueue after shutdown should be a no-op, got %v", err)
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if len(runner.seen) != 0 {
		t.Fatalf("no jobs expected, got %v", runner.seen)
	}
}
