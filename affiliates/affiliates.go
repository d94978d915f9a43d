package affiliates

import (
	"context"
	"fmt"
	"net/http"

	"evenza/db"
	"evenza/models"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Store fetches affiliate partner records.
type Store interface {
	AffiliateByID(ctx context.Context, affiliateID string) (models.Affiliate, error)
}

var DataStore Store = &mongoStore{}

type mongoStore struct{}

func (s *mongoStore) AffiliateByID(ctx context.Context, affiliateID string) (models.Affiliate, error) {
	var affiliate models.Affiliate
	err := db.AffiliatesCollection.FindOne(ctx, bson.M{"affiliateid": affiliateID}).Decode(&affiliate)
	return affiliate, err
}

// Verify resolves an affiliate id to {id, name}. Not-found and malformed
// records are deliberately indistinguishable to the caller.
func Verify(ctx context.Context, store Store, affiliateID string) (models.Affiliate, error) {
	affiliate, err := store.AffiliateByID(ctx, affiliateID)
	if err != nil || affiliate.Name == "" {
		return models.Affiliate{}, fmt.Errorf("affiliate ID incorrect")
	}
	return models.Affiliate{AffiliateID: affiliate.AffiliateID, Name: affiliate.Name}, nil
}

func VerifyAffiliate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	affiliateID := ps.ByName("affiliateid")
	if affiliateID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "affiliate ID is required")
		return
	}

	affiliate, err := Verify(r.Context(), DataStore, affiliateID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"id":   affiliate.AffiliateID,
		"name": affiliate.Name,
	})
}
