package numbering

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicekit/internal/logger"
)

// exerciseStore runs the CounterStore contract against any implementation.
func exerciseStore(t *testing.T, store CounterStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "invoice_counter")
	assert.ErrorIs(t, err, ErrCounterNotFound)

	require.NoError(t, store.Set(ctx, "invoice_counter", `{"yearMonth":"202601","count":1}`))
	require.NoError(t, store.Set(ctx, "invoice_counter", `{"yearMonth":"202601","count":2}`))
	require.NoError(t, store.Set(ctx, "spn_counter", `{"yearMonth":"202601","count":7}`))

	value, err := store.Get(ctx, "invoice_counter")
	require.NoError(t, err)
	assert.Equal(t, `{"yearMonth":"202601","count":2}`, value)

	value, err = store.Get(ctx, "spn_counter")
	require.NoError(t, err)
	assert.Equal(t, `{"yearMonth":"202601","count":7}`, value)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "counters.json")
	exerciseStore(t, NewFileStore(path))

	// A second store on the same file sees the persisted values.
	value, err := NewFileStore(path).Get(context.Background(), "spn_counter")
	require.NoError(t, err)
	assert.Contains(t, value, `"count":7`)
}

func TestFileStore_CorruptFileIsReplaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counters.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	store := NewFileStore(path)
	_, err := store.Get(context.Background(), "invoice_counter")
	assert.Error(t, err)

	clock := &fakeClock{t: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.Local)}
	n := NewNumberer(store, WithClock(clock.Now), WithLogger(logger.Nop()))

	number, err := n.Next(context.Background(), KindInvoice, "INV")
	require.NoError(t, err)
	assert.Equal(t, "INV-202608-01", number)

	number, err = n.Next(context.Background(), KindInvoice, "INV")
	require.NoError(t, err)
	assert.Equal(t, "INV-202608-02", number)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "counters.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStoreWithClient(client, "")
	assert.Equal(t, "invoicekit:counter:invoice_counter", store.key("invoice_counter"))

	custom := NewRedisStoreWithClient(client, "tenant-a:")
	assert.Equal(t, "tenant-a:spn_counter", custom.key("spn_counter"))
}
