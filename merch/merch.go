package merch

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"evenza/db"
	"evenza/models"
	"evenza/mq"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateMerch adds a merch listing under an event. Accepts multipart form
// data so an image can ride along.
func CreateMerch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	priceStr := r.FormValue("price")
	stockStr := r.FormValue("stock")
	if name == "" || priceStr == "" || stockStr == "" {
		http.Error(w, "Name, price and stock are required", http.StatusBadRequest)
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		http.Error(w, "Invalid price value", http.StatusBadRequest)
		return
	}
	stock, err := strconv.Atoi(stockStr)
	if err != nil || stock < 0 {
		http.Error(w, "Invalid stock value", http.StatusBadRequest)
		return
	}

	listing := models.MerchListing{
		MerchID:   utils.GenerateID(12),
		EventID:   eventID,
		Name:      name,
		Price:     price,
		Stock:     stock,
		Image:     r.FormValue("image"),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := db.MerchCollection.InsertOne(r.Context(), listing); err != nil {
		http.Error(w, "Failed to create merch: "+err.Error(), http.StatusInternalServerError)
		return
	}

	go mq.Emit(context.Background(), "merch-created", mq.Index{
		EntityType: "listing", EntityId: listing.MerchID, Method: "POST",
		ItemType: "event", ItemId: eventID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, listing)
}

func GetMerch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	cursor, err := db.MerchCollection.Find(r.Context(), bson.M{"eventid": eventID})
	if err != nil {
		http.Error(w, "Failed to fetch merch", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	var list []models.MerchListing
	if err := cursor.All(r.Context(), &list); err != nil {
		http.Error(w, "Failed to decode merch", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.MerchListing{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

func EditMerch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	merchID := ps.ByName("merchid")

	var existing models.MerchListing
	err := db.MerchCollection.FindOne(r.Context(),
		bson.M{"eventid": eventID, "merchid": merchID}).Decode(&existing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Merch not found", http.StatusNotFound)
		} else {
			http.Error(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	updateFields := bson.M{}
	if name := r.FormValue("name"); name != "" && name != existing.Name {
		updateFields["name"] = name
	}
	if priceStr := r.FormValue("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			http.Error(w, "Invalid price value", http.StatusBadRequest)
			return
		}
		updateFields["price"] = price
	}
	if stockStr := r.FormValue("stock"); stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			http.Error(w, "Invalid stock value", http.StatusBadRequest)
			return
		}
		updateFields["stock"] = stock
	}
	if image := r.FormValue("image"); image != "" {
		updateFields["image"] = image
	}

	if len(updateFields) == 0 {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": false,
			"message": "No changes detected for merch",
		})
		return
	}
	updateFields["updated_at"] = time.Now().UTC()

	_, err = db.MerchCollection.UpdateOne(r.Context(),
		bson.M{"eventid": eventID, "merchid": merchID},
		bson.M{"$set": updateFields},
	)
	if err != nil {
		http.Error(w, "Failed to update merch: "+err.Error(), http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "merchid": merchID})
}

func DeleteMerch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")
	merchID := ps.ByName("merchid")

	result, err := db.MerchCollection.DeleteOne(r.Context(),
		bson.M{"eventid": eventID, "merchid": merchID})
	if err != nil {
		http.Error(w, "Failed to delete merch", http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Merch not found", http.StatusNotFound)
		return
	}

	go mq.Emit(context.Background(), "merch-deleted", mq.Index{
		EntityType: "listing", EntityId: merchID, Method: "DELETE",
		ItemType: "event", ItemId: eventID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
