package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"evenza/draft"
	"evenza/globals"
	"evenza/models"
	"evenza/mq"
	"evenza/pricing"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
)

// ValidationError marks a failure that maps to 400 rather than 500.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// CreateResult is the outcome of a successful creation: the primary write
// succeeded, secondary steps may have produced warnings.
type CreateResult struct {
	Event    models.EventRecord
	Warnings []string
}

// CreateOne runs the ordered write sequence for one event. Only the primary
// event insert is fatal; the listing upsert, affiliate link and analytics
// bump are each downgraded to a warning on failure.
func CreateOne(ctx context.Context, store Store, ownerID string, d draft.EventDraft, now time.Time) (*CreateResult, error) {
	if err := d.ValidateForSubmit(now); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	var tickets []models.TicketTier
	if d.PricingEnabled {
		validated, err := pricing.ValidateTiers(d.Tickets)
		if err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
		tickets = validated
	} else {
		tickets = []models.TicketTier{}
	}

	event := models.EventRecord{
		EventID:              utils.GenerateID(14),
		OwnerID:              ownerID,
		EventName:            d.EventName,
		EventDescription:     d.EventDescription,
		Images:               d.Images,
		Venue:                d.Venue,
		Coords:               d.Coords,
		StartDateTime:        d.StartDateTime.UTC(),
		EndDateTime:          d.EndDateTime.UTC(),
		EventType:            d.EventType,
		PricingEnabled:       d.PricingEnabled,
		IsFree:               !d.PricingEnabled,
		Tickets:              tickets,
		CollaborationEnabled: d.CollaborationEnabled,
		AllowAgents:          d.AllowAgents,
		TicketsSold:          0,
		Revenue:              0,
		Status:               "active",
		CreatedAt:            now.UTC(),
		UpdatedAt:            now.UTC(),
	}
	if d.EnableStopDate && d.StopDate != nil {
		stop := d.StopDate.UTC()
		event.StopDate = &stop
	}
	if d.AffiliateID != "" {
		event.Affiliate = &models.Affiliate{AffiliateID: d.AffiliateID, Name: d.AffiliateName}
	}

	// Step 1: authoritative. Everything after this point must not abort.
	if err := store.InsertEvent(ctx, &event); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	result := &CreateResult{Event: event}

	// Step 2: public listing, keyed by name slug (last write wins on collision).
	listing := models.PublicListing{
		Slug:          utils.Slugify(event.EventName),
		EventID:       event.EventID,
		OwnerID:       event.OwnerID,
		EventName:     event.EventName,
		EventType:     event.EventType,
		Venue:         event.Venue,
		StartDateTime: event.StartDateTime,
		IsFree:        event.IsFree,
		UpdatedAt:     now.UTC(),
	}
	if len(event.Images) > 0 {
		listing.Image = event.Images[0]
	}
	if err := store.UpsertListing(ctx, listing); err != nil {
		log.Printf("public listing write failed for event %s: %v", event.EventID, err)
		result.Warnings = append(result.Warnings, "public listing could not be created")
	}

	// Step 3: affiliate link + counter increment.
	if d.AffiliateID != "" {
		link := models.AffiliateLink{
			AffiliateID: d.AffiliateID,
			EventID:     event.EventID,
			OwnerID:     event.OwnerID,
			EventName:   event.EventName,
			LinkedAt:    now.UTC(),
		}
		if err := store.LinkAffiliate(ctx, link); err != nil {
			log.Printf("affiliate link failed for event %s: %v", event.EventID, err)
			result.Warnings = append(result.Warnings, "affiliate relationship could not be recorded")
		}
	}

	// Step 4: analytics counters, all three periods or none.
	if err := store.BumpAnalytics(ctx, now); err != nil {
		log.Printf("analytics bump failed for event %s: %v", event.EventID, err)
		result.Warnings = append(result.Warnings, "analytics counters could not be updated")
	}

	return result, nil
}

// CreateEventHandler serves POST /api/event/one.
func CreateEventHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ownerID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || ownerID == "" {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"error":   "invalid_user",
			"message": "Missing or invalid user identity",
		})
		return
	}

	var d draft.EventDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
			"error":   "invalid_body",
			"message": "Request body is not valid JSON",
			"details": err.Error(),
		})
		return
	}

	result, err := CreateOne(r.Context(), DataStore, ownerID, d, time.Now())
	if err != nil {
		if ve, ok := err.(*ValidationError); ok {
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
				"error":   "validation_failed",
				"message": ve.Msg,
			})
			return
		}
		log.Printf("event creation failed: %v", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, utils.M{
			"error":   "create_failed",
			"message": "Could not save the event",
			"details": err.Error(),
		})
		return
	}

	go mq.Emit(context.Background(), "event-created", mq.Index{
		EntityType: "event", EntityId: result.Event.EventID, Method: "POST",
	})

	response := utils.M{
		"success": true,
		"eventId": result.Event.EventID,
		"data":    result.Event,
	}
	if len(result.Warnings) > 0 {
		response["warnings"] = result.Warnings
	}
	utils.RespondWithJSON(w, http.StatusCreated, response)
}
