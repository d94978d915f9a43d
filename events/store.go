package events

import (
	"context"
	"fmt"
	"time"

	"evenza/db"
	"evenza/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the persistence surface the orchestrator writes through. Handlers
// use the package-level DataStore; tests swap it for a fake.
type Store interface {
	InsertEvent(ctx context.Context, event *models.EventRecord) error
	UpsertListing(ctx context.Context, listing models.PublicListing) error
	LinkAffiliate(ctx context.Context, link models.AffiliateLink) error
	BumpAnalytics(ctx context.Context, at time.Time) error

	EventByID(ctx context.Context, ownerID, eventID string) (models.EventRecord, error)
	EventsByOwner(ctx context.Context, ownerID string) ([]models.EventRecord, error)
	UpdateEvent(ctx context.Context, ownerID, eventID string, fields bson.M) error
	ListingBySlug(ctx context.Context, slug string) (models.PublicListing, error)
	Listings(ctx context.Context) ([]models.PublicListing, error)
}

var DataStore Store = &mongoStore{}

type mongoStore struct{}

func (s *mongoStore) InsertEvent(ctx context.Context, event *models.EventRecord) error {
	result, err := db.EventsCollection.InsertOne(ctx, event)
	if err != nil {
		return err
	}
	if result.InsertedID == nil {
		return fmt.Errorf("no document inserted")
	}
	return nil
}

func (s *mongoStore) UpsertListing(ctx context.Context, listing models.PublicListing) error {
	opts := options.Replace().SetUpsert(true)
	_, err := db.PublicEventsCollection.ReplaceOne(ctx, bson.M{"slug": listing.Slug}, listing, opts)
	return err
}

// LinkAffiliate writes the link subdocument and bumps the affiliate's event
// counter. The affiliate must exist with a non-empty name.
func (s *mongoStore) LinkAffiliate(ctx context.Context, link models.AffiliateLink) error {
	var affiliate models.Affiliate
	err := db.AffiliatesCollection.FindOne(ctx, bson.M{"affiliateid": link.AffiliateID}).Decode(&affiliate)
	if err != nil || affiliate.Name == "" {
		return fmt.Errorf("affiliate %s not found", link.AffiliateID)
	}

	if _, err := db.AffiliateLinkCollection.InsertOne(ctx, link); err != nil {
		return err
	}
	_, err = db.AffiliatesCollection.UpdateOne(ctx,
		bson.M{"affiliateid": link.AffiliateID},
		bson.M{"$inc": bson.M{"event_count": 1}},
	)
	return err
}

// BumpAnalytics increments the daily, monthly and yearly created-event
// counters in a single ordered bulk write.
func (s *mongoStore) BumpAnalytics(ctx context.Context, at time.Time) error {
	at = at.UTC()
	keys := []struct{ period, key string }{
		{"daily", at.Format("2006-01-02")},
		{"monthly", at.Format("2006-01")},
		{"yearly", at.Format("2006")},
	}

	writes := make([]mongo.WriteModel, 0, len(keys))
	for _, k := range keys {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"period": k.period, "key": k.key}).
			SetUpdate(bson.M{"$inc": bson.M{"events_created": 1}}).
			SetUpsert(true))
	}

	_, err := db.AnalyticsCollection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	return err
}

func (s *mongoStore) EventByID(ctx context.Context, ownerID, eventID string) (models.EventRecord, error) {
	var event models.EventRecord
	filter := bson.M{"eventid": eventID}
	if ownerID != "" {
		filter["ownerid"] = ownerID
	}
	err := db.EventsCollection.FindOne(ctx, filter).Decode(&event)
	return event, err
}

func (s *mongoStore) EventsByOwner(ctx context.Context, ownerID string) ([]models.EventRecord, error) {
	cursor, err := db.EventsCollection.Find(ctx, bson.M{"ownerid": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.EventRecord
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.EventRecord{}
	}
	return list, nil
}

func (s *mongoStore) UpdateEvent(ctx context.Context, ownerID, eventID string, fields bson.M) error {
	result, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID, "ownerid": ownerID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *mongoStore) ListingBySlug(ctx context.Context, slug string) (models.PublicListing, error) {
	var listing models.PublicListing
	err := db.PublicEventsCollection.FindOne(ctx, bson.M{"slug": slug}).Decode(&listing)
	return listing, err
}

func (s *mongoStore) Listings(ctx context.Context) ([]models.PublicListing, error) {
	cursor, err := db.PublicEventsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var list []models.PublicListing
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.PublicListing{}
	}
	return list, nil
}
