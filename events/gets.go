package events

import (
	"encoding/json"
	"net/http"

	"evenza/globals"
	"evenza/rdx"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
)

func GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ownerID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || ownerID == "" {
		http.Error(w, "Invalid user", http.StatusBadRequest)
		return
	}

	list, err := DataStore.EventsByOwner(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "Failed to fetch events", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID, _ := r.Context().Value(globals.UserIDKey).(string)
	eventID := ps.ByName("eventid")

	event, err := DataStore.EventByID(r.Context(), ownerID, eventID)
	if err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// GetPublicEvents serves the discovery listing, cached in Redis until an
// event change invalidates it.
func GetPublicEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cacheKey := "public:events"
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	list, err := DataStore.Listings(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch listings", http.StatusInternalServerError)
		return
	}

	if data, err := json.Marshal(list); err == nil {
		rdx.RdxSet(cacheKey, string(data))
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func GetPublicEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listing, err := DataStore.ListingBySlug(r.Context(), ps.ByName("slug"))
	if err != nil {
		http.Error(w, "Listing not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, listing)
}
