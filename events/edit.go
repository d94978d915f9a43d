package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"evenza/globals"
	"evenza/models"
	"evenza/mq"
	"evenza/pricing"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// editPayload carries the fields the Edit tab may change. Empty/nil fields
// are left untouched.
type editPayload struct {
	EventName        string              `json:"event_name"`
	EventDescription string              `json:"event_description"`
	Venue            string              `json:"venue"`
	EventType        string              `json:"event_type"`
	Images           []string            `json:"images"`
	StartDateTime    *time.Time          `json:"start_date_time"`
	EndDateTime      *time.Time          `json:"end_date_time"`
	Status           string              `json:"status"`
	Tickets          []models.TicketTier `json:"ticket_prices"`
}

func updateFieldsFromPayload(p editPayload) (bson.M, error) {
	fields := bson.M{}
	if p.EventName != "" {
		fields["event_name"] = p.EventName
	}
	if p.EventDescription != "" {
		fields["event_description"] = p.EventDescription
	}
	if p.Venue != "" {
		fields["venue"] = p.Venue
	}
	if p.EventType != "" {
		fields["event_type"] = p.EventType
	}
	if len(p.Images) > 0 {
		fields["images"] = p.Images
	}
	if p.StartDateTime != nil {
		fields["start_date_time"] = p.StartDateTime.UTC()
	}
	if p.EndDateTime != nil {
		fields["end_date_time"] = p.EndDateTime.UTC()
	}
	if p.Status != "" {
		if p.Status != "active" && p.Status != "paused" && p.Status != "ended" {
			return nil, fmt.Errorf("invalid status %q", p.Status)
		}
		fields["status"] = p.Status
	}
	if p.Tickets != nil {
		validated, err := pricing.ValidateTiers(p.Tickets)
		if err != nil {
			return nil, err
		}
		fields["ticket_prices"] = validated
	}
	return fields, nil
}

func EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || ownerID == "" {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}
	eventID := ps.ByName("eventid")
	if eventID == "" {
		http.Error(w, "Missing event ID", http.StatusBadRequest)
		return
	}

	var payload editPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid input data", http.StatusBadRequest)
		return
	}

	fields, err := updateFieldsFromPayload(payload)
	if err != nil {
		log.Printf("invalid update fields for event %s: %v", eventID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(fields) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": false,
			"message": "No changes detected",
		})
		return
	}
	fields["updated_at"] = time.Now().UTC()

	if err := DataStore.UpdateEvent(r.Context(), ownerID, eventID, fields); err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	go mq.Emit(context.Background(), "event-updated", mq.Index{
		EntityType: "event", EntityId: eventID, Method: "PUT",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "eventid": eventID})
}
