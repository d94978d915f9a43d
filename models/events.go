package models

import "time"

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// TicketTier is one named ticket type with its own price and optional capacity.
// Price is kept as the raw form string so that "", "0" and "0.00" all survive
// the round trip; ParsedPrice caches the numeric value after validation.
type TicketTier struct {
	Policy         string  `json:"policy" bson:"policy"`
	Price          string  `json:"price" bson:"price"`
	Description    string  `json:"description,omitempty" bson:"description,omitempty"`
	AvailableCount *int    `json:"available_count,omitempty" bson:"available_count,omitempty"`
	ParsedPrice    float64 `json:"-" bson:"parsed_price"`
}

// EventRecord is the authoritative persisted event under an organizer's namespace.
type EventRecord struct {
	EventID              string       `json:"eventid" bson:"eventid"`
	OwnerID              string       `json:"ownerid" bson:"ownerid"`
	EventName            string       `json:"event_name" bson:"event_name"`
	EventDescription     string       `json:"event_description" bson:"event_description"`
	Images               []string     `json:"images" bson:"images"`
	Venue                string       `json:"venue" bson:"venue"`
	Coords               *Coordinates `json:"coords,omitempty" bson:"coords,omitempty"`
	StartDateTime        time.Time    `json:"start_date_time" bson:"start_date_time"`
	EndDateTime          time.Time    `json:"end_date_time" bson:"end_date_time"`
	EventType            string       `json:"event_type" bson:"event_type"`
	PricingEnabled       bool         `json:"pricing_enabled" bson:"pricing_enabled"`
	IsFree               bool         `json:"is_free" bson:"is_free"`
	Tickets              []TicketTier `json:"ticket_prices" bson:"ticket_prices"`
	StopDate             *time.Time   `json:"stop_date,omitempty" bson:"stop_date,omitempty"`
	CollaborationEnabled bool         `json:"collaboration_enabled" bson:"collaboration_enabled"`
	AllowAgents          bool         `json:"allow_agents" bson:"allow_agents"`
	Affiliate            *Affiliate   `json:"affiliate,omitempty" bson:"affiliate,omitempty"`
	TicketsSold          int          `json:"tickets_sold" bson:"tickets_sold"`
	Revenue              float64      `json:"revenue" bson:"revenue"`
	Status               string       `json:"status" bson:"status"`
	CreatedAt            time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at" bson:"updated_at"`
}

// PublicListing is the denormalized discovery copy of an event. It is keyed by
// a slug of the event name, so two events with the same name overwrite each
// other; EventID records which event currently owns the slug.
type PublicListing struct {
	Slug          string    `json:"slug" bson:"slug"`
	EventID       string    `json:"eventid" bson:"eventid"`
	OwnerID       string    `json:"ownerid" bson:"ownerid"`
	EventName     string    `json:"event_name" bson:"event_name"`
	EventType     string    `json:"event_type" bson:"event_type"`
	Venue         string    `json:"venue" bson:"venue"`
	Image         string    `json:"image,omitempty" bson:"image,omitempty"`
	StartDateTime time.Time `json:"start_date_time" bson:"start_date_time"`
	IsFree        bool      `json:"is_free" bson:"is_free"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
