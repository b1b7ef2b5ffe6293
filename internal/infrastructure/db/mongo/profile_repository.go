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
)

const profileCollection = "profiles"

// ProfileRepository persists application profiles in MongoDB.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profileCollection)}
}

type mongoProfile struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Role        string             `bson:"role"`
	LoginID     string             `bson:"login_id"`
	Name        string             `bson:"name"`
	PhoneNumber string             `bson:"phone_number"`
	Department  string             `bson:"department,omitempty"`
	Designation string             `bson:"designation,omitempty"`
	RegisterNo  string             `bson:"register_number,omitempty"`
	Year        int                `bson:"year,omitempty"`
	Branch      string             `bson:"branch,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d mongoProfile) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:             d.ID.Hex(),
		UserID:         d.UserID,
		Role:           domain.Role(d.Role),
		LoginID:        d.LoginID,
		Name:           d.Name,
		PhoneNumber:    d.PhoneNumber,
		Department:     d.Department,
		Designation:    d.Designation,
		RegisterNumber: d.RegisterNo,
		Year:           d.Year,
		Branch:         d.Branch,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProfile{
		UserID:      profile.UserID,
		Role:        string(profile.Role),
		LoginID:     profile.LoginID,
		Name:        profile.Name,
		PhoneNumber: profile.PhoneNumber,
		Department:  profile.Department,
		Designation: profile.Designation,
		RegisterNo:  profile.RegisterNumber,
		Year:        profile.Year,
		Branch:      profile.Branch,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrLoginIDTaken
		}
		return fmt.Errorf("insert profile: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		profile.ID = oid.Hex()
	}
	return nil
}

func (r *ProfileRepository) FindByLoginID(ctx context.Context, loginID string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"login_id": loginID})
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *ProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoProfile
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique login_id index and the user_id lookup
// index. Login-id uniqueness lives here, not in the pre-check.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "login_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
