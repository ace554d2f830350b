package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"advisorly/database"
	"advisorly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository persists the ledger in the bookings collection, one document
// per booking keyed by code.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository() *MongoRepository {
	coll := database.BookingsCollection()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		// Index creation failing on startup is recoverable; uniqueness is
		// still enforced by the ledger's code issuance path.
		fmt.Printf("warning: failed to ensure booking code index: %v\n", err)
	}
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking %s: %w", booking.Code, err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, code string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", code, err)
	}
	return &booking, nil
}

func (r *MongoRepository) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"code": booking.Code}, booking)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.Code, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) ActiveByDate(ctx context.Context, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{
		"date":        date,
		"status":      bson.M{"$ne": models.BookingStatusCancelled},
		"is_waitlist": false,
	}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for %s: %w", date, err)
	}
	defer cur.Close(ctx)
	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bookings for %s: %w", date, err)
	}
	return out, nil
}

func (r *MongoRepository) AllCodes(ctx context.Context) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"code": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list booking codes: %w", err)
	}
	defer cur.Close(ctx)
	codes := make(map[string]struct{})
	for cur.Next(ctx) {
		var doc struct {
			Code string `bson:"code"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode booking code: %w", err)
		}
		codes[doc.Code] = struct{}{}
	}
	return codes, cur.Err()
}
