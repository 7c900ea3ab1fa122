// Package repository provides data access for steel rate cards.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DiameterRate is the steel rate for one nominal diameter.
type DiameterRate struct {
	DiameterMM int     `bson:"diameter_mm" json:"diameter_mm" example:"16"`
	RatePerKg  float64 `bson:"rate_per_kg" json:"rate_per_kg" example:"72.5"`
}

// RateCard is a versioned steel price configuration.
type RateCard struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	DefaultRatePerKg *float64           `bson:"default_rate_per_kg,omitempty" json:"default_rate_per_kg,omitempty" example:"70"`
	Rates            []DiameterRate     `bson:"rates_by_diameter,omitempty" json:"rates_by_diameter,omitempty"`
	Currency         string             `bson:"currency,omitempty" json:"currency,omitempty" example:"INR"`
	Active           bool               `bson:"active" json:"active"`
	Version          int                `bson:"version" json:"version"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
	CreatedBy        string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// RateMap returns the per-diameter rates keyed by diameter.
func (c *RateCard) RateMap() map[int]float64 {
	if c == nil || len(c.Rates) == 0 {
		return nil
	}
	m := make(map[int]float64, len(c.Rates))
	for _, r := range c.Rates {
		m[r.DiameterMM] = r.RatePerKg
	}
	return m
}

// RatesFromMap converts a diameter-keyed map into a slice ordered by diameter.
func RatesFromMap(m map[int]float64) []DiameterRate {
	if len(m) == 0 {
		return nil
	}
	rates := make([]DiameterRate, 0, len(m))
	for d, r := range m {
		rates = append(rates, DiameterRate{DiameterMM: d, RatePerKg: r})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].DiameterMM < rates[j].DiameterMM })
	return rates
}

// RateCardsRepository provides methods for rate card operations.
type RateCardsRepository struct {
	collection *mongo.Collection
}

// NewRateCardsRepository creates a new rate cards repository.
func NewRateCardsRepository(db *MongoDB) *RateCardsRepository {
	return &RateCardsRepository{
		collection: db.RateCards,
	}
}

// GetActive returns the active rate card, or nil when none exists.
func (r *RateCardsRepository) GetActive(ctx context.Context) (*RateCard, error) {
	var card RateCard
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&card)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active rate card: %w", err)
	}
	return &card, nil
}

// Create stores card as the new active version and deactivates the previous one.
func (r *RateCardsRepository) Create(ctx context.Context, card RateCard) (*RateCard, error) {
	version := 1
	var latest RateCard
	err := r.collection.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.M{"version": -1})).Decode(&latest)
	switch {
	case err == nil:
		version = latest.Version + 1
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, fmt.Errorf("find latest rate card: %w", err)
	}

	now := time.Now()
	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	)
	if err != nil {
		return nil, fmt.Errorf("deactivate rate cards: %w", err)
	}

	card.ID = primitive.NewObjectID()
	card.Active = true
	card.Version = version
	card.CreatedAt = now
	card.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, card); err != nil {
		return nil, fmt.Errorf("insert rate card: %w", err)
	}
	return &card, nil
}

// List returns rate cards, newest version first.
func (r *RateCardsRepository) List(ctx context.Context, limit int) ([]RateCard, error) {
	opts := options.Find().SetSort(bson.M{"version": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list rate cards: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var cards []RateCard
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("decode rate cards: %w", err)
	}
	return cards, nil
}
