package affiliates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"evenza/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeStore struct {
	partners map[string]models.Affiliate
}

func (f *fakeStore) AffiliateByID(_ context.Context, id string) (models.Affiliate, error) {
	affiliate, ok := f.partners[id]
	if !ok {
		return models.Affiliate{}, mongo.ErrNoDocuments
	}
	return affiliate, nil
}

func TestVerify(t *testing.T) {
	store := &fakeStore{partners: map[string]models.Affiliate{
		"aff1":    {AffiliateID: "aff1", Name: "Partner Co", EventCount: 4},
		"no-name": {AffiliateID: "no-name"},
	}}

	t.Run("Success", func(t *testing.T) {
		affiliate, err := Verify(context.Background(), store, "aff1")
		require.NoError(t, err)
		assert.Equal(t, "aff1", affiliate.AffiliateID)
		assert.Equal(t, "Partner Co", affiliate.Name)
		// Only id and name are exposed to the draft.
		assert.Zero(t, affiliate.EventCount)
	})

	t.Run("NotFoundAndMalformedLookTheSame", func(t *testing.T) {
		_, errMissing := Verify(context.Background(), store, "nope")
		_, errNoName := Verify(context.Background(), store, "no-name")
		require.Error(t, errMissing)
		require.Error(t, errNoName)
		assert.Equal(t, errMissing.Error(), errNoName.Error())
	})
}

func TestVerifyAffiliateHandler(t *testing.T) {
	old := DataStore
	DataStore = &fakeStore{partners: map[string]models.Affiliate{
		"aff1": {AffiliateID: "aff1", Name: "Partner Co"},
	}}
	t.Cleanup(func() { DataStore = old })

	t.Run("Found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/affiliates/aff1/verify", nil)
		VerifyAffiliate(rec, req, httprouter.Params{{Key: "affiliateid", Value: "aff1"}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":"aff1","name":"Partner Co"}`, rec.Body.String())
	})

	t.Run("Unknown", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/affiliates/zzz/verify", nil)
		VerifyAffiliate(rec, req, httprouter.Params{{Key: "affiliateid", Value: "zzz"}})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
