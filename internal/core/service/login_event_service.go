package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/interiorfitout/backoffice/internal/core/domain"
	"github.com/interiorfitout/backoffice/internal/core/ports"
)

type loginEventService struct {
	repo  ports.LoginEventRepository
	dedup ports.EventDeduplicator
	log   zerolog.Logger
}

// NewLoginEventService returns the audit trail writer used by the dispatcher.
// dedup may be nil, in which case every event is stored.
func NewLoginEventService(repo ports.LoginEventRepository, dedup ports.EventDeduplicator, log zerolog.Logger) ports.LoginEventService {
	return &loginEventService{repo: repo, dedup: dedup, log: log}
}

// Process persists a single audit event. Identical successful events within
// the same second (a client retrying a burst of refreshes, for example) are
// stored once. Failed and throttled attempts are always stored so bursts
// stay countable.
func (s *loginEventService) Process(ctx context.Context, event domain.LoginEvent) error {
	if event.Outcome == "" {
		return fmt.Errorf("process login event: missing outcome")
	}

	dedup := s.dedup != nil && dedupable(event.Outcome)
	if dedup {
		isDup, err := s.dedup.IsDuplicate(ctx, event)
		if err != nil {
			s.log.Warn().Err(err).Str("outcome", string(event.Outcome)).Msg("dedup check failed, storing anyway")
		} else if isDup {
			s.log.Debug().Str("outcome", string(event.Outcome)).Str("ip", event.RemoteIP).Msg("duplicate login event skipped")
			return nil
		}
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process login event: %w", err)
	}

	if dedup {
		if err := s.dedup.Mark(ctx, event); err != nil {
			s.log.Warn().Err(err).Msg("failed to set dedup key")
		}
	}

	s.log.Debug().
		Str("outcome", string(event.Outcome)).
		Str("admin_id", event.AdminID).
		Str("ip", event.RemoteIP).
		Msg("login event recorded")
	return nil
}

func dedupable(outcome domain.LoginOutcome) bool {
	return outcome == domain.LoginSucceeded || outcome == domain.RefreshSucceeded
}
