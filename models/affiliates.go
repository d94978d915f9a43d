package models

import "time"

// Affiliate is a referral partner that can be linked to an event.
type Affiliate struct {
	AffiliateID string `json:"affiliateid" bson:"affiliateid"`
	Name        string `json:"name" bson:"name"`
	EventCount  int    `json:"event_count,omitempty" bson:"event_count,omitempty"`
}

// AffiliateLink relates an event to an affiliate, created once at event
// creation time.
type AffiliateLink struct {
	AffiliateID string    `json:"affiliateid" bson:"affiliateid"`
	EventID     string    `json:"eventid" bson:"eventid"`
	OwnerID     string    `json:"ownerid" bson:"ownerid"`
	EventName   string    `json:"event_name" bson:"event_name"`
	LinkedAt    time.Time `json:"linked_at" bson:"linked_at"`
}
