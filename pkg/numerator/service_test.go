package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates sys_sequences: every call bumps the counter by one,
// unless an explicit value is passed (SetNextNumber).
type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			m.currentValue = val
			return &mockRow{val: m.currentValue}
		}
	}

	m.currentValue++
	return &mockRow{val: m.currentValue}
}

func TestGetNextNumber(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("MU")
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, period)
	require.NoError(t, err)
	assert.Equal(t, "MU-2026-00001", num)

	num, err = svc.GetNextNumber(ctx, cfg, period)
	require.NoError(t, err)
	assert.Equal(t, "MU-2026-00002", num)
}

func TestGetNextNumber_NoYear(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	cfg := Config{Prefix: "RM", PadWidth: 3, ResetPeriod: "never"}

	num, err := svc.GetNextNumber(context.Background(), cfg, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "RM-001", num)
}

func TestSetNextNumber(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("ALLOC")
	period := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.SetNextNumber(ctx, cfg, period, 99))

	num, err := svc.GetNextNumber(ctx, cfg, period)
	require.NoError(t, err)
	assert.Equal(t, "ALLOC-2026-00100", num)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int64(42), ParseNumber("MU-2026-00042"))
	assert.Equal(t, int64(7), ParseNumber("RM-007"))
	assert.Equal(t, int64(-1), ParseNumber("garbage"))
	assert.Equal(t, int64(-1), ParseNumber("MU-2026-"))
	assert.Equal(t, int64(-1), ParseNumber(""))
}

func TestParseNumber_RoundTrip(t *testing.T) {
	svc := New(&mockQuerier{})
	period := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	formatted := svc.formatNumber(DefaultConfig("MU"), period, 42)
	assert.Equal(t, int64(42), ParseNumber(formatted))

	formatted = svc.formatNumber(Config{Prefix: "RM", PadWidth: 3}, period, 7)
	assert.Equal(t, int64(7), ParseNumber(formatted))
}

func TestBuildKey_ResetPeriods(t *testing.T) {
	svc := New(&mockQuerier{})
	period := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "MU_2026", svc.buildKey(DefaultConfig("MU"), period))
	assert.Equal(t, "MU_2026_08", svc.buildKey(Config{Prefix: "MU", ResetPeriod: "month"}, period))
	assert.Equal(t, "MU", svc.buildKey(Config{Prefix: "MU", ResetPeriod: "never"}, period))
}

func TestGetNextNumber_NilService(t *testing.T) {
	var svc *Service
	_, err := svc.GetNextNumber(context.Background(), DefaultConfig("X"), time.Now())
	require.Error(t, err)
	assert.Equal(t, "numerator service is not initialized", err.Error())
}
