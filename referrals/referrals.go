package referrals

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"evenza/db"
	"evenza/models"
	"evenza/mq"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type createPayload struct {
	Code      string `json:"code"`
	OwnerName string `json:"owner_name"`
}

func CreateReferral(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid input data", http.StatusBadRequest)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(payload.Code))
	if code == "" {
		// A blank code gets a generated one.
		code = strings.ToUpper(utils.GenerateID(8))
	}
	if payload.OwnerName == "" {
		http.Error(w, "Owner name is required", http.StatusBadRequest)
		return
	}

	// Referral codes are unique within an event.
	exists := db.ReferralsCollection.FindOne(r.Context(), bson.M{"eventid": eventID, "code": code}).Err()
	if exists == nil {
		http.Error(w, "Referral code already exists for this event", http.StatusConflict)
		return
	}

	referral := models.Referral{
		ReferralID: utils.GenerateID(12),
		EventID:    eventID,
		Code:       code,
		OwnerName:  payload.OwnerName,
		Uses:       0,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := db.ReferralsCollection.InsertOne(r.Context(), referral); err != nil {
		http.Error(w, "Failed to create referral: "+err.Error(), http.StatusInternalServerError)
		return
	}

	go mq.Emit(context.Background(), "referral-created", mq.Index{
		EntityType: "referral", EntityId: referral.ReferralID, Method: "POST",
		ItemType: "event", ItemId: eventID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, referral)
}

func GetReferrals(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	cursor, err := db.ReferralsCollection.Find(r.Context(), bson.M{"eventid": eventID})
	if err != nil {
		http.Error(w, "Failed to fetch referrals", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var list []models.Referral
	if err := cursor.All(r.Context(), &list); err != nil {
		http.Error(w, "Failed to decode referrals", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Referral{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func ToggleReferral(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	referralID := ps.ByName("referralid")

	var referral models.Referral
	err := db.ReferralsCollection.FindOne(r.Context(),
		bson.M{"eventid": eventID, "referralid": referralID}).Decode(&referral)
	if err != nil {
		http.Error(w, "Referral not found", http.StatusNotFound)
		return
	}

	_, err = db.ReferralsCollection.UpdateOne(r.Context(),
		bson.M{"eventid": eventID, "referralid": referralID},
		bson.M{"$set": bson.M{"active": !referral.Active}},
	)
	if err != nil {
		http.Error(w, "Failed to update referral", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "active": !referral.Active})
}

func DeleteReferral(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	referralID := ps.ByName("referralid")

	result, err := db.ReferralsCollection.DeleteOne(r.Context(),
		bson.M{"eventid": eventID, "referralid": referralID})
	if err != nil {
		http.Error(w, "Failed to delete referral", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Referral not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
