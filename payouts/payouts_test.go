package payouts

import (
	"testing"

	"evenza/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeSummary(t *testing.T) {
	history := []models.Payout{
		{Amount: 100, Status: "settled"},
		{Amount: 50, Status: "requested"},
		{Amount: 25, Status: "rejected"},
	}

	s := ComputeSummary("evt1", 400, history)
	assert.Equal(t, 400.0, s.Revenue)
	assert.Equal(t, 50.0, s.Requested)
	assert.Equal(t, 100.0, s.Settled)
	assert.Equal(t, 250.0, s.Available, "rejected payouts do not reduce the balance")
}

func TestComputeSummaryNeverNegative(t *testing.T) {
	history := []models.Payout{{Amount: 500, Status: "settled"}}
	s := ComputeSummary("evt1", 400, history)
	assert.Equal(t, 0.0, s.Available)
}

func TestComputeSummaryEmptyHistory(t *testing.T) {
	s := ComputeSummary("evt1", 120.5, nil)
	assert.Equal(t, 120.5, s.Available)
}
