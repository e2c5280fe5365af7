package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sectionledger/backend/internal/events"
	"github.com/sectionledger/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// store runs units of work against the database.
type store struct {
	db        *gorm.DB
	timeout   time.Duration
	attempts  int
	backoff   time.Duration
	publisher events.Publisher
}

// unit is one atomic unit of work for a single user. Everything
// written through tx commits or rolls back together.
type unit struct {
	tx       *gorm.DB
	userID   uuid.UUID
	events   []events.Event
	recorded []models.TransactionType
}

func (u *unit) emit(e events.Event) {
	u.events = append(u.events, e)
}

// forUpdate locks the selected rows until the unit ends on databases that
// support row locks. SQLite serializes all writers on its single connection instead.
func (u *unit) forUpdate() *gorm.DB {
	return u.tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// do runs fn in a single database transaction.
//
// Each attempt gets its own deadline derived from ctx. Attempts that fail
// with a retryable error are repeated with a linear backoff. Failures that
// are not raised by the ledger itself are wrapped in ErrStore.
func (s *store) do(ctx context.Context, userID uuid.UUID, fn func(u *unit) error) error {
	var err error

	for attempt := 1; ; attempt++ {
		var u *unit
		u, err = s.attempt(ctx, userID, fn)
		if err == nil {
			s.committed(ctx, u)
			return nil
		}

		if !IsRetryable(err) || ctx.Err() != nil || attempt >= s.attempts {
			break
		}

		storeRetries.Inc()
		log.Warn().Err(err).Str("user", userID.String()).Int("attempt", attempt).Msg("retrying ledger operation")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrStore, ctx.Err())
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}

	if isDomain(err) {
		return err
	}

	log.Error().Err(err).Str("user", userID.String()).Msg("ledger operation failed")
	return fmt.Errorf("%w: %w", ErrStore, err)
}

func (s *store) attempt(ctx context.Context, userID uuid.UUID, fn func(u *unit) error) (*unit, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	u := &unit{userID: userID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u.tx = tx
		return fn(u)
	})

	// A deadline that expired inside the driver is not always reported as such
	if err != nil && ctx.Err() != nil && !errors.Is(err, context.DeadlineExceeded) && !isDomain(err) {
		err = fmt.Errorf("%w: %w", ctx.Err(), err)
	}

	return u, err
}

// committed publishes the events and updates the metrics of a committed unit.
func (s *store) committed(ctx context.Context, u *unit) {
	for _, t := range u.recorded {
		transactionsRecorded.WithLabelValues(string(t)).Inc()
	}

	ctx = context.WithoutCancel(ctx)
	for _, e := range u.events {
		if err := s.publisher.Publish(ctx, e); err != nil {
			log.Error().Err(err).Str("kind", string(e.Kind)).Str("user", e.UserID.String()).Msg("could not publish ledger event")
		}
	}
}

// find loads the first record matching the conditions into dest.
func find(db *gorm.DB, dest any, conds ...any) error {
	return notFound(db.First(dest, conds...).Error)
}
