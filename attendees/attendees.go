package attendees

import (
	"net/http"

	"evenza/db"
	"evenza/globals"
	"evenza/models"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ownsEvent checks that the requesting user manages the event before exposing
// attendee data.
func ownsEvent(r *http.Request, eventID string) bool {
	ownerID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || ownerID == "" {
		return false
	}
	err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID, "ownerid": ownerID}).Err()
	return err == nil
}

func GetAttendees(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	if !ownsEvent(r, eventID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	cursor, err := db.AttendeesCollection.Find(r.Context(), bson.M{"eventid": eventID})
	if err != nil {
		http.Error(w, "Failed to fetch attendees", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var list []models.Attendee
	if err := cursor.All(r.Context(), &list); err != nil {
		http.Error(w, "Failed to decode attendees", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Attendee{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// ToggleCheckIn flips the checked-in flag for one attendee.
func ToggleCheckIn(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	attendeeID := ps.ByName("attendeeid")
	if !ownsEvent(r, eventID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var attendee models.Attendee
	err := db.AttendeesCollection.FindOne(r.Context(),
		bson.M{"eventid": eventID, "attendeeid": attendeeID}).Decode(&attendee)
	if err != nil {
		http.Error(w, "Attendee not found", http.StatusNotFound)
		return
	}

	_, err = db.AttendeesCollection.UpdateOne(r.Context(),
		bson.M{"eventid": eventID, "attendeeid": attendeeID},
		bson.M{"$set": bson.M{"checked_in": !attendee.CheckedIn}},
	)
	if err != nil {
		http.Error(w, "Failed to update attendee", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":    true,
		"attendeeid": attendeeID,
		"checked_in": !attendee.CheckedIn,
	})
}
