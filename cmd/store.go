package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"invoicekit/internal/config"
	"invoicekit/internal/numbering"
)

// openCounterStore builds the CounterStore selected by COUNTER_STORE. The
// returned close function is never nil.
func openCounterStore(ctx context.Context, c *config.Config, log zerolog.Logger) (numbering.CounterStore, func(), error) {
	noop := func() {}

	switch c.CounterStore {
	case config.StoreMemory:
		log.Warn().Msg("Using in-memory counter store, numbers are not persisted")
		return numbering.NewMemoryStore(), noop, nil

	case config.StoreFile:
		log.Debug().Str("path", c.CounterFile).Msg("Using file counter store")
		return numbering.NewFileStore(c.CounterFile), noop, nil

	case config.StoreSQLite:
		store, err := numbering.NewSQLiteStore(c.CounterSQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open sqlite counter store: %w", err)
		}
		log.Debug().Str("path", c.CounterSQLitePath).Msg("Using sqlite counter store")
		return store, closer(store, log), nil

	case config.StoreRedis:
		store, err := numbering.NewRedisStore(ctx, numbering.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect redis counter store: %w", err)
		}
		log.Debug().Str("addr", c.RedisAddr).Int("db", c.RedisDB).Msg("Using redis counter store")
		return store, closer(store, log), nil
	}

	return nil, noop, fmt.Errorf("unknown counter store %q", c.CounterStore)
}

func closer(c interface{ Close() error }, log zerolog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close counter store")
		}
	}
}

// prefixFor returns the configured prefix of kind.
func prefixFor(c *config.Config, kind numbering.Kind) string {
	if kind == numbering.KindProposal {
		return c.ProposalPrefix
	}
	return c.InvoicePrefix
}
