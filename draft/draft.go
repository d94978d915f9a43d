package draft

import (
	"fmt"
	"time"

	"evenza/models"
	"evenza/pricing"
)

// Step is one page of the event creation wizard. Steps are strictly linear.
type Step int

const (
	StepInfo Step = iota
	StepLocation
	StepDateTime
	StepPricing
	StepSettings
	StepAffiliate
	stepCount
)

func (s Step) String() string {
	switch s {
	case StepInfo:
		return "info"
	case StepLocation:
		return "location"
	case StepDateTime:
		return "datetime"
	case StepPricing:
		return "pricing"
	case StepSettings:
		return "settings"
	case StepAffiliate:
		return "affiliate"
	}
	return "unknown"
}

// EventDraft is the unpersisted form state of an event before submission.
type EventDraft struct {
	EventName            string              `json:"event_name"`
	EventDescription     string              `json:"event_description"`
	Images               []string            `json:"images"`
	Venue                string              `json:"venue"`
	Coords               *models.Coordinates `json:"coords,omitempty"`
	StartDateTime        time.Time           `json:"start_date_time"`
	EndDateTime          time.Time           `json:"end_date_time"`
	EventType            string              `json:"event_type"`
	PricingEnabled       bool                `json:"pricing_enabled"`
	Tickets              []models.TicketTier `json:"ticket_prices"`
	EnableStopDate       bool                `json:"enable_stop_date"`
	StopDate             *time.Time          `json:"stop_date,omitempty"`
	CollaborationEnabled bool                `json:"collaboration_enabled"`
	AllowAgents          bool                `json:"allow_agents"`
	AffiliateID          string              `json:"affiliate_id,omitempty"`
	AffiliateName        string              `json:"affiliate_name,omitempty"`
}

// Wizard tracks the current step of a draft.
type Wizard struct {
	Draft EventDraft
	Step  Step
}

// CanProceed reports whether the draft satisfies the current step's gate.
func (w *Wizard) CanProceed(now time.Time) bool {
	return stepError(&w.Draft, w.Step, now) == nil
}

// Next advances one step when the current step's gate passes.
func (w *Wizard) Next(now time.Time) error {
	if err := stepError(&w.Draft, w.Step, now); err != nil {
		return err
	}
	if w.Step < stepCount-1 {
		w.Step++
	}
	return nil
}

func stepError(d *EventDraft, s Step, now time.Time) error {
	switch s {
	case StepInfo:
		if d.EventName == "" {
			return fmt.Errorf("event name is required")
		}
		if d.EventDescription == "" {
			return fmt.Errorf("event description is required")
		}
		if len(d.Images) == 0 {
			return fmt.Errorf("at least one event image is required")
		}
	case StepLocation:
		if d.Venue == "" {
			return fmt.Errorf("venue is required")
		}
	case StepDateTime:
		return d.validateDates(now)
	case StepPricing:
		if d.PricingEnabled {
			if _, err := pricing.ValidateTiers(d.Tickets); err != nil {
				return err
			}
		}
	case StepSettings:
		return d.validateStopDate()
	case StepAffiliate:
		if d.AffiliateID != "" && d.AffiliateName == "" {
			return fmt.Errorf("affiliate must be verified before submission")
		}
	}
	return nil
}

// ValidateForSubmit re-checks every rule defensively; values could have been
// cleared after a step was passed. Returns the first failure.
func (d *EventDraft) ValidateForSubmit(now time.Time) error {
	for s := StepInfo; s < stepCount; s++ {
		if err := stepError(d, s, now); err != nil {
			return err
		}
	}
	if d.EventType == "" {
		return fmt.Errorf("event type is required")
	}
	return nil
}

func (d *EventDraft) validateDates(now time.Time) error {
	if d.StartDateTime.IsZero() {
		return fmt.Errorf("start date and time are required")
	}
	if d.EndDateTime.IsZero() {
		return fmt.Errorf("end date and time are required")
	}
	if !d.EndDateTime.After(d.StartDateTime) {
		return fmt.Errorf("end date-time must be after start date-time")
	}
	minStart := dateOnly(now).AddDate(0, 0, 2)
	if dateOnly(d.StartDateTime).Before(minStart) {
		return fmt.Errorf("event must start at least 2 days from today")
	}
	return nil
}

func (d *EventDraft) validateStopDate() error {
	if !d.EnableStopDate {
		return nil
	}
	if d.StopDate == nil {
		return fmt.Errorf("stop date is required when ticket sales deadline is enabled")
	}
	if !d.StopDate.Before(d.StartDateTime) {
		return fmt.Errorf("stop date must be before the event start")
	}
	latest := dateOnly(d.StartDateTime).AddDate(0, 0, -3)
	if dateOnly(*d.StopDate).After(latest) {
		return fmt.Errorf("stop date must be at least 3 days before the event start")
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
