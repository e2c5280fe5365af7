// Package events publishes ledger events after the unit of work that produced them has committed.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindTransactionRecorded Kind = "transaction.recorded"
	KindGoalCompleted       Kind = "goal.completed"
	KindIncomeDistributed   Kind = "income.distributed"
	KindInvestmentClosed    Kind = "investment.closed"
)

// Event is a lightweight notification. Consumers fetch the full
// resource from the API if they need more than this.
type Event struct {
	Kind       Kind            `json:"kind"`
	UserID     uuid.UUID       `json:"userId"`
	ResourceID uuid.UUID       `json:"resourceId"`
	Amount     decimal.Decimal `json:"amount"`
	Detail     string          `json:"detail,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// New creates an event stamped with the current time.
func New(kind Kind, userID, resourceID uuid.UUID, amount decimal.Decimal, detail string) Event {
	return Event{
		Kind:       kind,
		UserID:     userID,
		ResourceID: resourceID,
		Amount:     amount,
		Detail:     detail,
		Timestamp:  time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON creates an event from JSON bytes
func FromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Publisher delivers events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards all events. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Recorder keeps all published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Event(nil), r.events...)
}

// OfKind returns all recorded events of one kind.
func (r *Recorder) OfKind(kind Kind) []Event {
	var matching []Event
	for _, e := range r.Events() {
		if e.Kind == kind {
			matching = append(matching, e)
		}
	}

	return matching
}
