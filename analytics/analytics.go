package analytics

import (
	"context"
	"net/http"
	"time"

	"evenza/db"
	"evenza/globals"
	"evenza/models"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Stats is the dashboard summary for one event.
type Stats struct {
	EventID     string         `json:"eventid"`
	EventName   string         `json:"event_name"`
	Metrics     map[string]int `json:"metrics"`
	Revenue     float64        `json:"revenue"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// CreationCounter is one period bucket of the created-events counters.
type CreationCounter struct {
	Period        string `json:"period" bson:"period"`
	Key           string `json:"key" bson:"key"`
	EventsCreated int    `json:"events_created" bson:"events_created"`
}

// GetEventStats serves the dashboard counters for one event.
func GetEventStats(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID, _ := r.Context().Value(globals.UserIDKey).(string)
	eventID := ps.ByName("eventid")

	var event models.EventRecord
	err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID, "ownerid": ownerID}).Decode(&event)
	if err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	attendees, _ := db.AttendeesCollection.CountDocuments(r.Context(), bson.M{"eventid": eventID})
	checkedIn, _ := db.AttendeesCollection.CountDocuments(r.Context(), bson.M{"eventid": eventID, "checked_in": true})
	discounts, _ := db.DiscountsCollection.CountDocuments(r.Context(), bson.M{"eventid": eventID, "active": true})
	referrals, _ := db.ReferralsCollection.CountDocuments(r.Context(), bson.M{"eventid": eventID, "active": true})

	stats := Stats{
		EventID:   event.EventID,
		EventName: event.EventName,
		Metrics: map[string]int{
			"tickets_sold":     event.TicketsSold,
			"attendees":        int(attendees),
			"checked_in":       int(checkedIn),
			"active_discounts": int(discounts),
			"active_referrals": int(referrals),
		},
		Revenue:     event.Revenue,
		GeneratedAt: time.Now().UTC(),
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// GetCreationCounters serves the admin daily/monthly/yearly created-event
// counters for the current date.
func GetCreationCounters(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	now := time.Now().UTC()
	filters := []bson.M{
		{"period": "daily", "key": now.Format("2006-01-02")},
		{"period": "monthly", "key": now.Format("2006-01")},
		{"period": "yearly", "key": now.Format("2006")},
	}

	counters := []CreationCounter{}
	for _, filter := range filters {
		var c CreationCounter
		if err := db.AnalyticsCollection.FindOne(context.TODO(), filter).Decode(&c); err == nil {
			counters = append(counters, c)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, counters)
}
