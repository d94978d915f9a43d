package models

import "time"

type Attendee struct {
	AttendeeID   string    `json:"attendeeid" bson:"attendeeid"`
	EventID      string    `json:"eventid" bson:"eventid"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	TierPolicy   string    `json:"tier_policy" bson:"tier_policy"`
	UniqueCode   string    `json:"unique_code" bson:"unique_code"`
	CheckedIn    bool      `json:"checked_in" bson:"checked_in"`
	PurchaseDate time.Time `json:"purchase_date" bson:"purchase_date"`
}

type Discount struct {
	DiscountID string    `json:"discountid" bson:"discountid"`
	EventID    string    `json:"eventid" bson:"eventid"`
	Code       string    `json:"code" bson:"code"`
	Percent    float64   `json:"percent" bson:"percent"`
	TierPolicy string    `json:"tier_policy,omitempty" bson:"tier_policy,omitempty"`
	MaxUses    int       `json:"max_uses" bson:"max_uses"`
	Used       int       `json:"used" bson:"used"`
	Active     bool      `json:"active" bson:"active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type Referral struct {
	ReferralID string    `json:"referralid" bson:"referralid"`
	EventID    string    `json:"eventid" bson:"eventid"`
	Code       string    `json:"code" bson:"code"`
	OwnerName  string    `json:"owner_name" bson:"owner_name"`
	Uses       int       `json:"uses" bson:"uses"`
	Active     bool      `json:"active" bson:"active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type MerchListing struct {
	MerchID   string    `json:"merchid" bson:"merchid"`
	EventID   string    `json:"eventid" bson:"eventid"`
	Name      string    `json:"name" bson:"name"`
	Price     float64   `json:"price" bson:"price"`
	Stock     int       `json:"stock" bson:"stock"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Payout struct {
	PayoutID    string     `json:"payoutid" bson:"payoutid"`
	EventID     string     `json:"eventid" bson:"eventid"`
	OwnerID     string     `json:"ownerid" bson:"ownerid"`
	Amount      float64    `json:"amount" bson:"amount"`
	Status      string     `json:"status" bson:"status"`
	RequestedAt time.Time  `json:"requested_at" bson:"requested_at"`
	SettledAt   *time.Time `json:"settled_at,omitempty" bson:"settled_at,omitempty"`
}

type FormQuestion struct {
	QuestionID string    `json:"questionid" bson:"questionid"`
	EventID    string    `json:"eventid" bson:"eventid"`
	Label      string    `json:"label" bson:"label"`
	Type       string    `json:"type" bson:"type"`
	Required   bool      `json:"required" bson:"required"`
	Options    []string  `json:"options,omitempty" bson:"options,omitempty"`
	Order      int       `json:"order" bson:"order"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type FormResponse struct {
	ResponseID  string            `json:"responseid" bson:"responseid"`
	EventID     string            `json:"eventid" bson:"eventid"`
	AttendeeID  string            `json:"attendeeid,omitempty" bson:"attendeeid,omitempty"`
	Answers     map[string]string `json:"answers" bson:"answers"`
	SubmittedAt time.Time         `json:"submitted_at" bson:"submitted_at"`
}
