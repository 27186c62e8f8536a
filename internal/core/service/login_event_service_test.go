package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

type stubLoginEventRepo struct {
	inserted []domain.LoginEvent
	err      error
}

func (r *stubLoginEventRepo) Insert(_ context.Context, e *domain.LoginEvent) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, *e)
	return nil
}

type stubDedup struct {
	seen     map[domain.LoginEvent]bool
	checkErr error
}

func (d *stubDedup) IsDuplicate(_ context.Context, e domain.LoginEvent) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[e], nil
}

func (d *stubDedup) Mark(_ context.Context, e domain.LoginEvent) error {
	d.seen[e] = true
	return nil
}

func TestLoginEventService_Process(t *testing.T) {
	repo := &stubLoginEventRepo{}
	svc := NewLoginEventService(repo, nil, zerolog.Nop())

	event := domain.LoginEvent{Email: "admin@x.com", Outcome: domain.LoginSucceeded, OccurredAt: time.Now()}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one stored event, got %d", len(repo.inserted))
	}

	if err := svc.Process(context.Background(), domain.LoginEvent{}); err == nil {
		t.Fatalf("expected missing outcome to be rejected")
	}

	repo.err = errBoom
	if err := svc.Process(context.Background(), event); !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestLoginEventService_SkipsDuplicates(t *testing.T) {
	repo := &stubLoginEventRepo{}
	dedup := &stubDedup{seen: map[domain.LoginEvent]bool{}}
	svc := NewLoginEventService(repo, dedup, zerolog.Nop())

	event := domain.LoginEvent{Email: "admin@x.com", Outcome: domain.RefreshSucceeded, OccurredAt: time.Unix(1700000000, 0)}
	_ = svc.Process(context.Background(), event)
	_ = svc.Process(context.Background(), event)

	if len(repo.inserted) != 1 {
		t.Fatalf("expected duplicate to be skipped, stored %d", len(repo.inserted))
	}

	dedup.checkErr = errBoom
	_ = svc.Process(context.Background(), event)
	if len(repo.inserted) != 2 {
		t.Fatalf("dedup failure should store the event anyway")
	}
}

func TestLoginEventService_RejectedAttemptsAreNeverCollapsed(t *testing.T) {
	repo := &stubLoginEventRepo{}
	dedup := &stubDedup{seen: map[domain.LoginEvent]bool{}}
	svc := NewLoginEventService(repo, dedup, zerolog.Nop())

	at := time.Unix(1700000000, 0)
	for _, outcome := range []domain.LoginOutcome{domain.RefreshRejected, domain.LoginRejected, domain.LoginThrottled} {
		event := domain.LoginEvent{RemoteIP: "203.0.113.7", Outcome: outcome, OccurredAt: at}
		for i := 0; i < 3; i++ {
			if err := svc.Process(context.Background(), event); err != nil {
				t.Fatalf("process failed: %v", err)
			}
		}
	}

	if len(repo.inserted) != 9 {
		t.Fatalf("expected every failed attempt stored, got %d", len(repo.inserted))
	}
	if len(dedup.seen) != 0 {
		t.Fatalf("failed attempts must not set dedup markers")
	}
}
