package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSignal(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	expected := Signal{
		ID:     "S123",
		Time:   time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC),
		Pair:   "BTC-USD",
		Action: "BUY",
		Price:  60000,
		Trend:  64000,
		Reason: "price 60000.00 below 95% of trend 64000.00",
	}
	require.NoError(t, j.RecordSignal(expected))

	actual, err := j.GetSignal("S123")
	require.NoError(t, err)

	assert.Equal(t, expected.ID, actual.ID)
	assert.True(t, actual.Time.Equal(expected.Time))
	assert.Equal(t, expected.Pair, actual.Pair)
	assert.Equal(t, expected.Action, actual.Action)
	assert.InDelta(t, expected.Price, actual.Price, 1e-9)
	assert.InDelta(t, expected.Trend, actual.Trend, 1e-9)
	assert.Equal(t, expected.Reason, actual.Reason)
}

func TestGetSignalNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetSignal("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListSignalsBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, action := range []string{"BUY", "SELL", "BUY", "SELL"} {
		require.NoError(t, j.RecordSignal(Signal{
			ID:     string(rune('A' + i)),
			Time:   base.Add(time.Duration(i) * time.Hour),
			Pair:   "ETH-USD",
			Action: action,
			Price:  float64(3000 + i),
			Trend:  3100,
			Reason: "test",
		}))
	}

	got, err := j.ListSignalsBetween(base.Add(time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].ID)
	assert.Equal(t, "C", got[1].ID)

	got, err = j.ListSignalsBetween(base.Add(24*time.Hour), base.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListObservations(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, j.RecordObservation(Observation{
			ID:    string(rune('a' + i)),
			Time:  base.Add(time.Duration(i) * time.Minute),
			Pair:  "BTC-USD",
			Price: float64(100 + i),
			Trend: 100,
			Mode:  "minimum",
		}))
	}
	require.NoError(t, j.RecordObservation(Observation{ID: "z", Time: base, Pair: "ETH-USD", Mode: "sum"}))

	got, err := j.ListObservations("BTC-USD", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"e", "d", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.InDelta(t, 104.0, got[0].Price, 1e-9)
}
