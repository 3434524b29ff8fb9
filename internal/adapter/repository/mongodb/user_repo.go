package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rajasharmaa/dttt/internal/domain"
	"github.com/rajasharmaa/dttt/internal/platform/logger"
)

const userCollectionName = "users"

// UserRepository implements domain.UserRepository using MongoDB.
type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewUserRepository creates the repository and ensures the unique email
// index. Index creation is idempotent; a failure is logged but does not
// prevent startup.
func NewUserRepository(db *mongo.Database, log *logger.Logger) *UserRepository {
	collection := db.Collection(userCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("Failed to create indexes for users collection (may already exist)", zap.Error(err))
	} else {
		log.Info("Successfully ensured indexes for users collection")
	}

	return &UserRepository{
		collection: collection,
		logger:     log.Named("UserRepository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.logger.Info("Creating user in DB", zap.String("email", user.Email))

	doc := fromDomainUser(user)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	user.ID = doc.ID
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate email during user creation", zap.String("email", user.Email))
			return primitive.NilObjectID, domain.ErrEmailTaken
		}
		r.logger.Error("Database error during user creation", zap.String("email", user.Email), zap.Error(err))
		return primitive.NilObjectID, fmt.Errorf("db insert failed: %w", err)
	}

	r.logger.Info("User created successfully in DB", zap.String("user_id", doc.ID.Hex()))
	return doc.ID, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.logger.Debug("Getting user by email from DB", zap.String("email", email))
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Database error fetching user by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.logger.Debug("Getting user by ID from DB", zap.String("user_id", id.Hex()))
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Database error fetching user by ID", zap.String("user_id", id.Hex()), zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.UserPatch) (*domain.User, error) {
	r.logger.Info("Updating user in DB", zap.String("user_id", id.Hex()))

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		r.logger.Error("Database error during user update", zap.String("user_id", id.Hex()), zap.Error(err))
		return nil, fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		r.logger.Warn("User not found during update attempt", zap.String("user_id", id.Hex()))
		return nil, domain.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *UserRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	r.logger.Info("Deactivating user", zap.String("user_id", id.Hex()))
	update := bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("Database error deactivating user", zap.String("user_id", id.Hex()), zap.Error(err))
		return fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
