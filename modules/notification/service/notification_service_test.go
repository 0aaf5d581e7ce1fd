package service

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"event-api/modules/notification/task"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, t *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if _, ok := ctx.Deadline(); !ok {
		return nil, stderrors.New("enqueue without deadline")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "task-1", Queue: "notifications", Type: t.Type()}, nil
}

func TestNotifyRegistrationEnqueuesTask(t *testing.T) {
	q := &fakeEnqueuer{}
	s := NewNotificationService(q)

	id := uuid.New()
	date := time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC)

	s.NotifyRegistration(id, "ann@example.com", "Ann Lee", date)
	s.Close()

	if len(q.tasks) != 1 {
		t.Fatalf("enqueued %d tasks, want 1", len(q.tasks))
	}
	got := q.tasks[0]
	if got.Type() != task.TypeEventRegistrationEmail {
		t.Fatalf("type = %q", got.Type())
	}

	payload, err := task.ParseEventRegistrationEmailPayload(got)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.ParticipantID != id.String() ||
		payload.Email != "ann@example.com" ||
		payload.Name != "Ann Lee" ||
		payload.EventDate != "2026-05-01 18:30:00" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestNotifyRegistrationSwallowsQueueErrors(t *testing.T) {
	for _, err := range []error{asynq.ErrTaskIDConflict, stderrors.New("redis down")} {
		q := &fakeEnqueuer{err: err}
		s := NewNotificationService(q)

		s.NotifyRegistration(uuid.New(), "ann@example.com", "Ann Lee", time.Now())
		s.Close()

		if len(q.tasks) != 1 {
			t.Fatalf("%v: enqueued %d tasks, want 1 attempt", err, len(q.tasks))
		}
	}
}

func TestCloseWaitsForAllEnqueues(t *testing.T) {
	q := &fakeEnqueuer{}
	s := NewNotificationService(q)

	for i := 0; i < 20; i++ {
		s.NotifyRegistration(uuid.New(), "ann@example.com", "Ann", time.Now())
	}
	s.Close()

	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) != 20 {
		t.Fatalf("enqueued %d tasks after Close, want 20", len(q.tasks))
	}
}
