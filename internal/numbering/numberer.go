// Package numbering issues per-month sequential document numbers such as
// INV-202601-01 and SPN-202601-03.
//
// Each sequence kind owns one counter record {yearMonth, count}. The record is
// overwritten on every call; when the calendar month changes the count starts
// again at 1. Nothing else is kept, so previously issued numbers cannot be
// listed.
//
// Counters live behind the CounterStore interface. The command-line tool uses
// FileStore by default; GormStore (sqlite) and RedisStore are available for
// shared setups, MemoryStore for tests.
package numbering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"invoicekit/internal/logger"
)

// Kind names a numbering sequence.
type Kind string

const (
	KindInvoice  Kind = "invoice"
	KindProposal Kind = "proposal"
)

// Key returns the store key of the sequence.
func (k Kind) Key() (string, error) {
	switch k {
	case KindInvoice:
		return "invoice_counter", nil
	case KindProposal:
		return "spn_counter", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// DefaultPrefix returns the prefix printed for the kind when none is configured.
func (k Kind) DefaultPrefix() string {
	if k == KindProposal {
		return "SPN"
	}
	return "INV"
}

// ParseKind accepts "invoice" or "proposal" (also "spn", "penawaran").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "invoice", "inv":
		return KindInvoice, nil
	case "proposal", "spn", "penawaran", "surat_penawaran":
		return KindProposal, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MonthCounter is the persisted state of one sequence.
type MonthCounter struct {
	YearMonth string `json:"yearMonth"`
	Count     int    `json:"count"`
}

// Numberer generates document numbers from a CounterStore.
type Numberer struct {
	store CounterStore
	now   func() time.Time
	log   zerolog.Logger
}

// Option configures a Numberer.
type Option func(*Numberer)

// WithClock replaces the wall clock, e.g. to simulate a month change.
func WithClock(now func() time.Time) Option {
	return func(n *Numberer) {
		n.now = now
	}
}

// WithLogger sets the logger used for recovered store failures.
func WithLogger(log zerolog.Logger) Option {
	return func(n *Numberer) {
		n.log = log
	}
}

// NewNumberer creates a Numberer over store.
func NewNumberer(store CounterStore, opts ...Option) *Numberer {
	n := &Numberer{
		store: store,
		now:   time.Now,
		log:   logger.WithComponent("numbering"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Next advances the sequence for kind and returns "{PREFIX}-{YYYYMM}-{seq}".
// The sequence is zero-padded to two digits and grows wider past 99.
//
// Every call mutates the stored counter. A missing or unreadable counter
// restarts the sequence at 1. If the new count cannot be saved the number is
// still returned, together with an error wrapping ErrCounterNotSaved.
func (n *Numberer) Next(ctx context.Context, kind Kind, prefix string) (string, error) {
	const op = "Next"

	key, err := kind.Key()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if prefix == "" {
		prefix = kind.DefaultPrefix()
	}

	yearMonth := n.now().Format("200601")

	count := 1
	if stored, ok := n.load(ctx, key); ok && stored.YearMonth == yearMonth {
		count = stored.Count + 1
	}

	number := Format(prefix, yearMonth, count)

	data, err := json.Marshal(MonthCounter{YearMonth: yearMonth, Count: count})
	if err != nil {
		return number, fmt.Errorf("%s: %w: %v", op, ErrCounterNotSaved, err)
	}
	if err := n.store.Set(ctx, key, string(data)); err != nil {
		n.log.Error().
			Err(err).
			Str("kind", string(kind)).
			Str("number", number).
			Msg("Failed to persist document counter")
		return number, fmt.Errorf("%s: %w: %v", op, ErrCounterNotSaved, err)
	}

	n.log.Debug().
		Str("kind", string(kind)).
		Str("year_month", yearMonth).
		Int("count", count).
		Msg("Issued document number")

	return number, nil
}

// Peek returns the stored counter for kind without advancing it. The boolean
// is false when no usable counter exists.
func (n *Numberer) Peek(ctx context.Context, kind Kind) (MonthCounter, bool, error) {
	key, err := kind.Key()
	if err != nil {
		return MonthCounter{}, false, err
	}
	counter, ok := n.load(ctx, key)
	return counter, ok, nil
}

// load reads and decodes a counter. Any failure counts as "no counter".
func (n *Numberer) load(ctx context.Context, key string) (MonthCounter, bool) {
	raw, err := n.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCounterNotFound) {
			n.log.Warn().Err(err).Str("key", key).Msg("Could not read document counter, restarting sequence")
		}
		return MonthCounter{}, false
	}

	var counter MonthCounter
	if err := json.Unmarshal([]byte(raw), &counter); err != nil {
		n.log.Warn().Err(err).Str("key", key).Msg("Ignoring corrupt document counter")
		return MonthCounter{}, false
	}
	if counter.Count < 1 || len(counter.YearMonth) != 6 {
		n.log.Warn().Str("key", key).Str("value", raw).Msg("Ignoring invalid document counter")
		return MonthCounter{}, false
	}
	return counter, true
}

// Format renders a document number.
func Format(prefix, yearMonth string, count int) string {
	return fmt.Sprintf("%s-%s-%02d", prefix, yearMonth, count)
}
