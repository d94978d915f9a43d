package discounts

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

// NormalizeCode trims and uppercases a discount code for the uniqueness check.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type createPayload struct {
	Code       string  `json:"code"`
	Percent    float64 `json:"percent"`
	TierPolicy string  `json:"tier_policy"`
	MaxUses    int     `json:"max_uses"`
}

// ValidatePayload checks the create payload before any database access.
func ValidatePayload(p createPayload) (string, bool) {
	if NormalizeCode(p.Code) == "" {
		return "discount code is required", false
	}
	if p.Percent <= 0 || p.Percent > 100 {
		return "percent must be between 0 and 100", false
	}
	if p.MaxUses < 0 {
		return "max uses cannot be negative", false
	}
	return "", true
}

func CreateDiscount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid input data", http.StatusBadRequest)
		return
	}
	if msg, ok := ValidatePayload(payload); !ok {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	code := NormalizeCode(payload.Code)

	// Discount codes are unique within an event.
	exists := db.DiscountsCollection.FindOne(r.Context(), bson.M{"eventid": eventID, "code": code}).Err()
	if exists == nil {
		http.Error(w, "Discount code already exists for this event", http.StatusConflict)
		return
	}

	discount := models.Discount{
		DiscountID: utils.GenerateID(12),
		EventID:    eventID,
		Code:       code,
		Percent:    payload.Percent,
		TierPolicy: payload.TierPolicy,
		MaxUses:    payload.MaxUses,
		Used:       0,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := db.DiscountsCollection.InsertOne(r.Context(), discount); err != nil {
		http.Error(w, "Failed to create discount: "+err.Error(), http.StatusInternalServerError)
		return
	}

	go mq.Emit(context.Background(), "discount-created", mq.Index{
		EntityType: "discount", EntityId: discount.DiscountID, Method: "POST",
		ItemType: "event", ItemId: eventID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, discount)
}

func GetDiscounts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	cursor, err := db.DiscountsCollection.Find(r.Context(), bson.M{"eventid": eventID})
	if err != nil {
		http.Error(w, "Failed to fetch discounts", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var list []models.Discount
	if err := cursor.All(r.Context(), &list); err != nil {
		http.Error(w, "Failed to decode discounts", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Discount{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// ToggleDiscount flips a discount between active and inactive.
func ToggleDiscount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	discountID := ps.ByName("discountid")

	var discount models.Discount
	err := db.DiscountsCollection.FindOne(r.Context(),
		bson.M{"eventid": eventID, "discountid": discountID}).Decode(&discount)
	if err != nil {
		http.Error(w, "Discount not found", http.StatusNotFound)
		return
	}

	_, err = db.DiscountsCollection.UpdateOne(r.Context(),
		bson.M{"eventid": eventID, "discountid": discountID},
		bson.M{"$set": bson.M{"active": !discount.Active}},
	)
	if err != nil {
		http.Error(w, "Failed to update discount", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "active": !discount.Active})
}

func DeleteDiscount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	discountID := ps.ByName("discountid")

	result, err := db.DiscountsCollection.DeleteOne(r.Context(),
		bson.M{"eventid": eventID, "discountid": discountID})
	if err != nil {
		http.Error(w, "Failed to delete discount", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Discount not found", http.StatusNotFound)
		return
	}

	go mq.Emit(context.Background(), "discount-deleted", mq.Index{
		EntityType: "discount", EntityId: discountID, Method: "DELETE",
		ItemType: "event", ItemId: eventID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
