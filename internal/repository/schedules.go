package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/guttosm/bbs-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrScheduleNotFound is returned when no saved schedule has the requested reference.
	ErrScheduleNotFound = errors.New("schedule not found")
	// ErrDuplicateReference is returned when a schedule is already saved under the reference.
	ErrDuplicateReference = errors.New("schedule reference already exists")
)

// SavedSchedule is a computed schedule stored with the inputs that produced it.
type SavedSchedule struct {
	ID        primitive.ObjectID    `bson:"_id,omitempty" json:"-"`
	Reference string                `bson:"reference" json:"reference" example:"5f0c6a1e-8f9b-4f7a-9d43-2b1f2c3d4e5f"`
	Project   model.ProjectMeta     `bson:"project" json:"project"`
	Code      model.DesignCode      `bson:"code" json:"code" example:"IS"`
	Items     []model.BarGroupInput `bson:"items" json:"items"`
	Result    *model.Schedule       `bson:"result" json:"result"`
	CreatedBy string                `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt time.Time             `bson:"created_at" json:"created_at"`
}

// ScheduleQueryOptions filters saved schedule listings.
type ScheduleQueryOptions struct {
	Project string
	Limit   int
	Skip    int
}

// SchedulesRepository provides methods for saved schedule operations.
type SchedulesRepository struct {
	collection *mongo.Collection
}

// NewSchedulesRepository creates a new saved schedules repository.
func NewSchedulesRepository(db *MongoDB) *SchedulesRepository {
	return &SchedulesRepository{
		collection: db.Schedules,
	}
}

// Create inserts a saved schedule.
func (r *SchedulesRepository) Create(ctx context.Context, s *SavedSchedule) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateReference, s.Reference)
		}
		return fmt.Errorf("insert schedule %s: %w", s.Reference, err)
	}
	return nil
}

// GetByReference returns the schedule saved under reference.
func (r *SchedulesRepository) GetByReference(ctx context.Context, reference string) (*SavedSchedule, error) {
	var s SavedSchedule
	err := r.collection.FindOne(ctx, bson.M{"reference": reference}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find schedule %s: %w", reference, err)
	}
	return &s, nil
}

// List returns saved schedules, newest first. Items and results are left out.
func (r *SchedulesRepository) List(ctx context.Context, opts ScheduleQueryOptions) ([]SavedSchedule, error) {
	filter := bson.M{}
	if opts.Project != "" {
		filter["project.name"] = bson.M{"$regex": regexp.QuoteMeta(opts.Project), "$options": "i"}
	}

	findOptions := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetProjection(bson.M{"items": 0, "result.results": 0, "result.compliance_notes": 0})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var schedules []SavedSchedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}
	return schedules, nil
}
