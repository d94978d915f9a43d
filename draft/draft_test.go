package draft

import (
	"testing"
	"time"

	"evenza/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

func validDraft() EventDraft {
	start := time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC)
	return EventDraft{
		EventName:        "Winter Gala",
		EventDescription: "An evening of music",
		Images:           []string{"/static/eventpic/a.jpg"},
		Venue:            "City Hall",
		StartDateTime:    start,
		EndDateTime:      start.Add(4 * time.Hour),
		EventType:        "concert",
	}
}

func TestValidateForSubmitAcceptsValidDraft(t *testing.T) {
	d := validDraft()
	require.NoError(t, d.ValidateForSubmit(now))
}

func TestEndBeforeStartRejected(t *testing.T) {
	d := validDraft()
	d.StartDateTime = time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC)
	d.EndDateTime = time.Date(2025, 1, 10, 17, 0, 0, 0, time.UTC)

	err := d.ValidateForSubmit(now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end date-time must be after start")
}

func TestEndEqualStartRejected(t *testing.T) {
	d := validDraft()
	d.EndDateTime = d.StartDateTime
	require.Error(t, d.ValidateForSubmit(now))
}

func TestMinimumStartDate(t *testing.T) {
	d := validDraft()
	d.StartDateTime = now.AddDate(0, 0, 1)
	d.EndDateTime = d.StartDateTime.Add(2 * time.Hour)

	err := d.ValidateForSubmit(now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 days")

	// Exactly two days out is allowed.
	d.StartDateTime = now.AddDate(0, 0, 2)
	d.EndDateTime = d.StartDateTime.Add(2 * time.Hour)
	require.NoError(t, d.ValidateForSubmit(now))
}

func TestStopDateRules(t *testing.T) {
	d := validDraft()
	d.StartDateTime = time.Date(2025, 1, 20, 18, 0, 0, 0, time.UTC)
	d.EndDateTime = d.StartDateTime.Add(2 * time.Hour)
	d.EnableStopDate = true

	t.Run("OneDayPriorRejected", func(t *testing.T) {
		stop := time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC)
		d.StopDate = &stop
		err := d.ValidateForSubmit(now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "3 days")
	})

	t.Run("ExactlyThreeDaysPriorAllowed", func(t *testing.T) {
		stop := time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)
		d.StopDate = &stop
		require.NoError(t, d.ValidateForSubmit(now))
	})

	t.Run("MissingStopDateRejected", func(t *testing.T) {
		d.StopDate = nil
		require.Error(t, d.ValidateForSubmit(now))
	})

	t.Run("DisabledStopDateIgnored", func(t *testing.T) {
		d.EnableStopDate = false
		d.StopDate = nil
		require.NoError(t, d.ValidateForSubmit(now))
	})
}

func TestPricingEnabledNeedsTiers(t *testing.T) {
	d := validDraft()
	d.PricingEnabled = true
	d.Tickets = nil

	err := d.ValidateForSubmit(now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one ticket tier")

	d.Tickets = []models.TicketTier{{Policy: "General", Price: "20"}}
	require.NoError(t, d.ValidateForSubmit(now))
}

func TestUnverifiedAffiliateRejected(t *testing.T) {
	d := validDraft()
	d.AffiliateID = "aff123"
	d.AffiliateName = ""
	require.Error(t, d.ValidateForSubmit(now))

	d.AffiliateName = "Partner Co"
	require.NoError(t, d.ValidateForSubmit(now))
}

func TestRequiredFields(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*EventDraft)
	}{
		{"name", func(d *EventDraft) { d.EventName = "" }},
		{"description", func(d *EventDraft) { d.EventDescription = "" }},
		{"images", func(d *EventDraft) { d.Images = nil }},
		{"venue", func(d *EventDraft) { d.Venue = "" }},
		{"type", func(d *EventDraft) { d.EventType = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			assert.Error(t, d.ValidateForSubmit(now))
		})
	}
}

func TestWizardStepsAreLinear(t *testing.T) {
	w := Wizard{}
	require.Equal(t, StepInfo, w.Step)

	// Empty draft cannot leave the first step.
	require.Error(t, w.Next(now))
	assert.Equal(t, StepInfo, w.Step)

	w.Draft = validDraft()
	for _, want := range []Step{StepLocation, StepDateTime, StepPricing, StepSettings, StepAffiliate} {
		require.NoError(t, w.Next(now))
		assert.Equal(t, want, w.Step)
	}

	// Advancing past the last step stays on the last step.
	require.NoError(t, w.Next(now))
	assert.Equal(t, StepAffiliate, w.Step)
}

func TestValuesClearedAfterAdvancingStillFailSubmit(t *testing.T) {
	w := Wizard{Draft: validDraft()}
	require.NoError(t, w.Next(now))
	require.NoError(t, w.Next(now))

	// Clearing a field from an earlier step is caught by the final check.
	w.Draft.EventName = ""
	require.Error(t, w.Draft.ValidateForSubmit(now))
}
