package pricing

import (
	"testing"

	"evenza/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFree(t *testing.T) {
	cases := []struct {
		name string
		tier models.TicketTier
		want bool
	}{
		{"named with empty price", models.TicketTier{Policy: "General", Price: ""}, true},
		{"named with zero string", models.TicketTier{Policy: "General", Price: "0"}, true},
		{"named with decimal zero", models.TicketTier{Policy: "General", Price: "0.00"}, true},
		{"named with real price", models.TicketTier{Policy: "VIP", Price: "25"}, false},
		{"unnamed never counts", models.TicketTier{Policy: "   ", Price: "0"}, false},
		{"junk price is not free", models.TicketTier{Policy: "General", Price: "abc"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsFree(tc.tier))
		})
	}
}

func TestTierSetFreeInvariant(t *testing.T) {
	s := NewTierSet()
	require.Len(t, s.Tiers, 1)

	require.NoError(t, s.UpdateTier(0, FieldPolicy, "General"))
	require.NoError(t, s.UpdateTier(0, FieldPrice, "0"))
	assert.Empty(t, s.Err, "one free tier is allowed")

	require.True(t, s.AddTier())
	require.NoError(t, s.UpdateTier(1, FieldPolicy, "Student"))
	require.NoError(t, s.UpdateTier(1, FieldPrice, ""))
	assert.Equal(t, ErrOneFreeTier, s.Err)

	// AddTier is refused while the invariant is violated.
	assert.False(t, s.AddTier())
	assert.Len(t, s.Tiers, 2)

	// Pricing the second tier clears the error.
	require.NoError(t, s.UpdateTier(1, FieldPrice, "15"))
	assert.Empty(t, s.Err)
	assert.True(t, s.AddTier())
}

func TestTierSetInvariantHeldAfterEveryOp(t *testing.T) {
	s := NewTierSet()
	ops := []func(){
		func() { s.UpdateTier(0, FieldPolicy, "A") },
		func() { s.UpdateTier(0, FieldPrice, "0") },
		func() { s.AddTier() },
		func() { s.UpdateTier(len(s.Tiers)-1, FieldPolicy, "B") },
		func() { s.UpdateTier(len(s.Tiers)-1, FieldPrice, "10") },
		func() { s.AddTier() },
		func() { s.RemoveTier(len(s.Tiers) - 1) },
		func() { s.UpdateTier(len(s.Tiers)-1, FieldPrice, "0.0") },
		func() { s.RemoveTier(len(s.Tiers) - 1) },
	}
	for i, op := range ops {
		op()
		if s.Err == "" {
			assert.LessOrEqual(t, s.FreeCount(), 1, "op %d left >1 free tier without error", i)
		} else {
			assert.Greater(t, s.FreeCount(), 1, "op %d set error without >1 free tier", i)
		}
	}
}

func TestRemoveTierKeepsLastTier(t *testing.T) {
	s := NewTierSet()
	assert.False(t, s.RemoveTier(0), "removing the only tier is a no-op")
	assert.Len(t, s.Tiers, 1)

	s.AddTier()
	assert.True(t, s.RemoveTier(1))
	assert.Len(t, s.Tiers, 1)
}

func TestUpdateTierBounds(t *testing.T) {
	s := NewTierSet()
	assert.Error(t, s.UpdateTier(5, FieldPolicy, "x"))
	assert.Error(t, s.UpdateTier(-1, FieldPrice, "1"))
	assert.Error(t, s.UpdateTier(0, "color", "red"))
	assert.Error(t, s.UpdateTier(0, FieldAvailableCount, "-3"))

	require.NoError(t, s.UpdateTier(0, FieldAvailableCount, "50"))
	require.NotNil(t, s.Tiers[0].AvailableCount)
	assert.Equal(t, 50, *s.Tiers[0].AvailableCount)

	require.NoError(t, s.UpdateTier(0, FieldAvailableCount, ""))
	assert.Nil(t, s.Tiers[0].AvailableCount)
}

func TestValidateTiers(t *testing.T) {
	t.Run("EmptySetRejected", func(t *testing.T) {
		_, err := ValidateTiers(nil)
		require.Error(t, err)
	})

	t.Run("MissingPolicyRejected", func(t *testing.T) {
		_, err := ValidateTiers([]models.TicketTier{{Policy: "", Price: "10"}})
		require.Error(t, err)
	})

	t.Run("ZeroPriceAllowed", func(t *testing.T) {
		out, err := ValidateTiers([]models.TicketTier{{Policy: "General", Price: "0"}})
		require.NoError(t, err)
		assert.Equal(t, 0.0, out[0].ParsedPrice)
	})

	t.Run("NegativePriceRejected", func(t *testing.T) {
		_, err := ValidateTiers([]models.TicketTier{{Policy: "General", Price: "-5"}})
		require.Error(t, err)
	})

	t.Run("TwoFreeTiersRejected", func(t *testing.T) {
		_, err := ValidateTiers([]models.TicketTier{
			{Policy: "General", Price: "0"},
			{Policy: "Student", Price: ""},
		})
		require.Error(t, err)
		assert.Equal(t, ErrOneFreeTier, err.Error())
	})

	t.Run("ParsesPrices", func(t *testing.T) {
		out, err := ValidateTiers([]models.TicketTier{
			{Policy: "General", Price: "12.50"},
			{Policy: "VIP", Price: "99"},
		})
		require.NoError(t, err)
		assert.Equal(t, 12.5, out[0].ParsedPrice)
		assert.Equal(t, 99.0, out[1].ParsedPrice)
	})
}
