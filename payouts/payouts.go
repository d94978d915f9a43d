package payouts

import (
	"net/http"
	"time"

	"evenza/db"
	"evenza/globals"
	"evenza/models"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Summary shows an organizer what is available to withdraw for one event.
type Summary struct {
	EventID   string  `json:"eventid"`
	Revenue   float64 `json:"revenue"`
	Requested float64 `json:"requested"`
	Settled   float64 `json:"settled"`
	Available float64 `json:"available"`
}

// ComputeSummary derives the payout figures from the event's revenue counter
// and the payout history.
func ComputeSummary(eventID string, revenue float64, history []models.Payout) Summary {
	s := Summary{EventID: eventID, Revenue: revenue}
	for _, p := range history {
		switch p.Status {
		case "requested":
			s.Requested += p.Amount
		case "settled":
			s.Settled += p.Amount
		}
	}
	s.Available = revenue - s.Requested - s.Settled
	if s.Available < 0 {
		s.Available = 0
	}
	return s
}

func payoutHistory(r *http.Request, eventID string) ([]models.Payout, error) {
	cursor, err := db.PayoutsCollection.Find(r.Context(), bson.M{"eventid": eventID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(r.Context())

	var list []models.Payout
	if err := cursor.All(r.Context(), &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Payout{}
	}
	return list, nil
}

func GetPayouts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID, _ := r.Context().Value(globals.UserIDKey).(string)
	eventID := ps.ByName("eventid")

	var event models.EventRecord
	err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID, "ownerid": ownerID}).Decode(&event)
	if err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	history, err := payoutHistory(r, eventID)
	if err != nil {
		http.Error(w, "Failed to fetch payouts", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"summary": ComputeSummary(eventID, event.Revenue, history),
		"history": history,
	})
}

// RequestPayout records a withdrawal request against the available balance.
func RequestPayout(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID, _ := r.Context().Value(globals.UserIDKey).(string)
	eventID := ps.ByName("eventid")

	var event models.EventRecord
	err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID, "ownerid": ownerID}).Decode(&event)
	if err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	history, err := payoutHistory(r, eventID)
	if err != nil {
		http.Error(w, "Failed to fetch payouts", http.StatusInternalServerError)
		return
	}

	summary := ComputeSummary(eventID, event.Revenue, history)
	if summary.Available <= 0 {
		http.Error(w, "No funds available for payout", http.StatusBadRequest)
		return
	}

	payout := models.Payout{
		PayoutID:    utils.GenerateID(12),
		EventID:     eventID,
		OwnerID:     ownerID,
		Amount:      summary.Available,
		Status:      "requested",
		RequestedAt: time.Now().UTC(),
	}
	if _, err := db.PayoutsCollection.InsertOne(r.Context(), payout); err != nil {
		http.Error(w, "Failed to record payout request", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, payout)
}
