package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/ports"
)

const requestCollection = "access_requests"

// AccessRequestRepository persists access requests in MongoDB.
type AccessRequestRepository struct {
	coll *mongo.Collection
}

func NewAccessRequestRepository(db *mongo.Database) *AccessRequestRepository {
	return &AccessRequestRepository{coll: db.Collection(requestCollection)}
}

type mongoRequest struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	UserID           string             `bson:"user_id"`
	Purpose          string             `bson:"purpose"`
	RequestDate      string             `bson:"request_date"`
	InTime           string             `bson:"in_time"`
	OutTime          string             `bson:"out_time"`
	Status           string             `bson:"status"`
	IsForStudents    bool               `bson:"is_for_students"`
	NumSystems       *int               `bson:"num_systems,omitempty"`
	NumStudents      *int               `bson:"num_students,omitempty"`
	SystemsAllocated []int              `bson:"systems_allocated,omitempty"`
	AdminNotes       string             `bson:"admin_notes,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func (d mongoRequest) toDomain() *domain.AccessRequest {
	return &domain.AccessRequest{
		ID:               d.ID.Hex(),
		UserID:           d.UserID,
		Purpose:          d.Purpose,
		RequestDate:      d.RequestDate,
		InTime:           d.InTime,
		OutTime:          d.OutTime,
		Status:           domain.RequestStatus(d.Status),
		IsForStudents:    d.IsForStudents,
		NumSystems:       d.NumSystems,
		NumStudents:      d.NumStudents,
		SystemsAllocated: d.SystemsAllocated,
		AdminNotes:       d.AdminNotes,
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
}

func (r *AccessRequestRepository) Create(ctx context.Context, request *domain.AccessRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRequest{
		UserID:        request.UserID,
		Purpose:       request.Purpose,
		RequestDate:   request.RequestDate,
		InTime:        request.InTime,
		OutTime:       request.OutTime,
		Status:        string(request.Status),
		IsForStudents: request.IsForStudents,
		NumSystems:    request.NumSystems,
		NumStudents:   request.NumStudents,
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert access request: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		request.ID = oid.Hex()
	}
	return nil
}

func (r *AccessRequestRepository) FindByID(ctx context.Context, id string) (*domain.AccessRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find access request: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccessRequestRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.AccessRequest, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *AccessRequestRepository) ListAll(ctx context.Context) ([]*domain.AccessRequest, error) {
	return r.list(ctx, bson.M{})
}

func (r *AccessRequestRepository) list(ctx context.Context, filter bson.M) ([]*domain.AccessRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list access requests: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.AccessRequest
	for cursor.Next(ctx) {
		var doc mongoRequest
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode access request: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list access requests: %w", err)
	}
	return out, nil
}

// ApplyDecision conditionally updates a pending request. The status
// filter makes the update atomic: a second admin deciding the same
// request matches zero documents and gets ErrInvalidTransition.
func (r *AccessRequestRepository) ApplyDecision(ctx context.Context, id string, decision ports.Decision) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     string(decision.Status),
		"updated_at": decision.DecidedAt,
	}
	if len(decision.SystemsAllocated) > 0 {
		set["systems_allocated"] = decision.SystemsAllocated
	}
	if decision.AdminNotes != "" {
		set["admin_notes"] = decision.AdminNotes
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.StatusPending)},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("apply decision: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the request vanished or it was already decided.
		count, countErr := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
		if countErr == nil && count == 0 {
			return domain.ErrRequestNotFound
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

// EnsureIndexes creates the listing indexes.
func (r *AccessRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
