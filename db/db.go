package db

import (
	"context"
	"log"

	"evenza/globals"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	EventsCollection        *mongo.Collection
	PublicEventsCollection  *mongo.Collection
	AffiliatesCollection    *mongo.Collection
	AffiliateLinkCollection *mongo.Collection
	AnalyticsCollection     *mongo.Collection
	AttendeesCollection     *mongo.Collection
	DiscountsCollection     *mongo.Collection
	ReferralsCollection     *mongo.Collection
	MerchCollection         *mongo.Collection
	PayoutsCollection       *mongo.Collection
	QuestionsCollection     *mongo.Collection
	ResponsesCollection     *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	clientOptions := options.Client().ApplyURI(globals.MongoURI)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("eventdb")
	EventsCollection = database.Collection("userEvents")
	PublicEventsCollection = database.Collection("publicEvents")
	AffiliatesCollection = database.Collection("affiliates")
	AffiliateLinkCollection = database.Collection("affiliatedEvents")
	AnalyticsCollection = database.Collection("analytics")
	AttendeesCollection = database.Collection("attendees")
	DiscountsCollection = database.Collection("discounts")
	ReferralsCollection = database.Collection("referrals")
	MerchCollection = database.Collection("listings")
	PayoutsCollection = database.Collection("payouts")
	QuestionsCollection = database.Collection("questions")
	ResponsesCollection = database.Collection("responses")
}
