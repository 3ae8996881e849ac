package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yektTime(t *testing.T, day, month, year, hour, min int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Yekaterinburg")
	require.NoError(t, err)
	return time.Date(year, time.Month(month), day, hour, min, 0, 0, loc)
}

func TestClassify_PrimaryStockWins(t *testing.T) {
	now := yektTime(t, 15, 1, 2025, 10, 0)

	tests := []struct {
		name      string
		primary   int
		secondary int
		preOrder  bool
	}{
		{"primary only", 3, 0, false},
		{"both locations", 3, 7, false},
		{"pre-order flag ignored with stock", 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := Classify(tt.primary, tt.secondary, tt.preOrder, now)
			assert.Equal(t, AvailableNow, state.Kind)
			assert.Equal(t, tt.primary, state.Quantity)
		})
	}
}

func TestClassify_SecondaryStockMeansNextDay(t *testing.T) {
	now := yektTime(t, 15, 1, 2025, 10, 0)

	state := Classify(0, 4, false, now)
	assert.Equal(t, AvailableNextDay, state.Kind)
	assert.Equal(t, 4, state.Quantity)

	// Pre-order is advisory and not consulted while any stock exists.
	state = Classify(0, 4, true, now)
	assert.Equal(t, AvailableNextDay, state.Kind)
}

func TestClassify_PreOrderDate(t *testing.T) {
	now := yektTime(t, 15, 1, 2025, 10, 0)

	state := Classify(0, 0, true, now)
	require.Equal(t, PreOrder, state.Kind)
	assert.True(t, state.AvailableFrom.Equal(now.AddDate(0, 0, 10)))
	assert.Equal(t, "25.01.2025", state.AvailableFrom.Format("02.01.2006"))
}

func TestClassify_PreOrderDateUsesStoreZone(t *testing.T) {
	// 23:00 UTC on the 15th is already 04:00 on the 16th in Yekaterinburg,
	// so the restock date must count from the 16th.
	now := time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC)

	state := Classify(0, 0, true, now)
	require.Equal(t, PreOrder, state.Kind)
	assert.Equal(t, "26.01.2025", state.AvailableFrom.Format("02.01.2006"))
}

func TestClassify_OutOfStock(t *testing.T) {
	now := yektTime(t, 15, 1, 2025, 10, 0)

	state := Classify(0, 0, false, now)
	assert.Equal(t, OutOfStock, state.Kind)
	assert.Zero(t, state.Quantity)
	assert.True(t, state.AvailableFrom.IsZero())
}

func TestClassify_NegativeQuantitiesClampToZero(t *testing.T) {
	now := yektTime(t, 15, 1, 2025, 10, 0)

	assert.Equal(t, OutOfStock, Classify(-3, -1, false, now).Kind)
	assert.Equal(t, PreOrder, Classify(-3, -1, true, now).Kind)

	state := Classify(-2, 6, false, now)
	assert.Equal(t, AvailableNextDay, state.Kind)
	assert.Equal(t, 6, state.Quantity)
}
