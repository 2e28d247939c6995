package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickStore_SetGet(t *testing.T) {
	t.Parallel()

	ps := NewTickStore()
	tk := Tick{
		Pair:  "BTC-USD",
		Price: 64000.5,
		Time:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	ps.Set(tk)

	got, err := ps.Get("BTC-USD")
	assert.NoError(t, err)
	assert.Equal(t, tk, got)

	got, err = ps.Latest(context.Background(), "BTC-USD")
	assert.NoError(t, err)
	assert.Equal(t, tk, got)
}

func TestTickStore_GetMissing(t *testing.T) {
	t.Parallel()

	ps := NewTickStore()

	got, err := ps.Get("NO-SUCH")
	assert.Error(t, err)
	assert.Equal(t, Tick{}, got)

	_, err = ps.Latest(context.Background(), "NO-SUCH")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataIntegrity)

	var die *DataIntegrityError
	require.True(t, errors.As(err, &die))
	assert.Equal(t, "NO-SUCH", die.Pair)
	assert.Contains(t, err.Error(), "failed to fetch price data")
}

func TestTickStore_CancelledContext(t *testing.T) {
	t.Parallel()

	ps := NewTickStore()
	ps.Set(Tick{Pair: "ETH-USD", Price: 3000})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ps.Latest(ctx, "ETH-USD")
	assert.ErrorIs(t, err, context.Canceled)
}
