package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"evenza/models"
)

// ErrOneFreeTier is the blocking message shown while more than one tier is
// free. While it is set, AddTier is refused.
const ErrOneFreeTier = "Only one ticket tier can be free"

// Field names accepted by UpdateTier.
const (
	FieldPolicy         = "policy"
	FieldPrice          = "price"
	FieldDescription    = "description"
	FieldAvailableCount = "available_count"
)

// TierSet holds the ticket tiers of a draft and enforces the single-free-tier
// rule after every mutation, not just at submit time.
type TierSet struct {
	Tiers []models.TicketTier
	Err   string
}

// NewTierSet starts with one blank tier, matching the initial form state.
func NewTierSet() *TierSet {
	return &TierSet{Tiers: []models.TicketTier{{}}}
}

// IsFree reports whether a tier counts as free: named, with a price that is
// empty, "0", or parses to zero.
func IsFree(t models.TicketTier) bool {
	if strings.TrimSpace(t.Policy) == "" {
		return false
	}
	price := strings.TrimSpace(t.Price)
	if price == "" || price == "0" {
		return true
	}
	v, err := strconv.ParseFloat(price, 64)
	return err == nil && v == 0
}

// FreeCount returns how many tiers currently satisfy the free predicate.
func (s *TierSet) FreeCount() int {
	n := 0
	for _, t := range s.Tiers {
		if IsFree(t) {
			n++
		}
	}
	return n
}

// AddTier appends a blank tier. Refused while the free-tier rule is violated.
func (s *TierSet) AddTier() bool {
	if s.Err != "" {
		return false
	}
	s.Tiers = append(s.Tiers, models.TicketTier{})
	return true
}

// UpdateTier mutates one field of one tier and re-checks the free-tier rule
// across all tiers.
func (s *TierSet) UpdateTier(index int, field, value string) error {
	if index < 0 || index >= len(s.Tiers) {
		return fmt.Errorf("no tier at index %d", index)
	}
	t := &s.Tiers[index]
	switch field {
	case FieldPolicy:
		t.Policy = value
	case FieldPrice:
		t.Price = value
	case FieldDescription:
		t.Description = value
	case FieldAvailableCount:
		if strings.TrimSpace(value) == "" {
			t.AvailableCount = nil
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return fmt.Errorf("invalid available count %q", value)
		}
		t.AvailableCount = &n
	default:
		return fmt.Errorf("unknown tier field %q", field)
	}
	s.revalidate()
	return nil
}

// RemoveTier drops one tier; a no-op when only one tier remains.
func (s *TierSet) RemoveTier(index int) bool {
	if len(s.Tiers) <= 1 || index < 0 || index >= len(s.Tiers) {
		return false
	}
	s.Tiers = append(s.Tiers[:index], s.Tiers[index+1:]...)
	s.revalidate()
	return true
}

func (s *TierSet) revalidate() {
	if s.FreeCount() > 1 {
		s.Err = ErrOneFreeTier
	} else {
		s.Err = ""
	}
}

// ValidateTiers checks the per-tier required fields at submit time: every
// tier needs a non-empty policy name and a defined price (zero allowed), and
// at least one tier must exist. It also fills ParsedPrice.
func ValidateTiers(tiers []models.TicketTier) ([]models.TicketTier, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("at least one ticket tier is required")
	}
	free := 0
	out := make([]models.TicketTier, len(tiers))
	for i, t := range tiers {
		if strings.TrimSpace(t.Policy) == "" {
			return nil, fmt.Errorf("ticket tier %d is missing a policy name", i+1)
		}
		price := strings.TrimSpace(t.Price)
		if price == "" {
			price = "0"
		}
		v, err := strconv.ParseFloat(price, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("ticket tier %q has an invalid price", t.Policy)
		}
		t.ParsedPrice = v
		if IsFree(t) {
			free++
		}
		out[i] = t
	}
	if free > 1 {
		return nil, fmt.Errorf("%s", ErrOneFreeTier)
	}
	return out, nil
}
