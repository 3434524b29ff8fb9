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

const inquiryCollectionName = "inquiries"

// InquiryRepository implements domain.InquiryRepository using MongoDB.
// Duplicate inquiries are permitted by design, so no uniqueness indexes.
type InquiryRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewInquiryRepository(db *mongo.Database, log *logger.Logger) *InquiryRepository {
	collection := db.Collection(inquiryCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("Failed to create indexes for inquiries collection (may already exist)", zap.Error(err))
	}

	return &InquiryRepository{
		collection: collection,
		logger:     log.Named("InquiryRepository"),
	}
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	r.logger.Info("Creating inquiry in DB", zap.String("email", inquiry.Email), zap.String("subject", inquiry.Subject))

	doc := fromDomainInquiry(inquiry)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	inquiry.ID = doc.ID
	inquiry.CreatedAt = now
	inquiry.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Database error during inquiry creation", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}

	r.logger.Info("Inquiry created successfully in DB", zap.String("inquiry_id", doc.ID.Hex()))
	return nil
}

func (r *InquiryRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*domain.Inquiry, error) {
	r.logger.Debug("Finding inquiries by user", zap.String("user_id", userID.Hex()))

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		r.logger.Error("Database error finding inquiries by user", zap.String("user_id", userID.Hex()), zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*inquiryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Error decoding inquiries by user", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}

	return toDomainInquiries(docs), nil
}

func (r *InquiryRepository) Find(ctx context.Context, filter domain.InquiryFilter) ([]*domain.Inquiry, int64, error) {
	r.logger.Debug("Finding inquiries", zap.Any("status", filter.Status), zap.Int64("page", filter.Page), zap.Int64("limit", filter.Limit))

	query := bson.M{}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
		if filter.Page > 1 {
			findOptions.SetSkip((filter.Page - 1) * filter.Limit)
		}
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		r.logger.Error("Database error finding inquiries", zap.Error(err))
		return nil, 0, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*inquiryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Error decoding inquiries", zap.Error(err))
		return nil, 0, fmt.Errorf("db cursor all failed: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error("Database error counting inquiries", zap.Error(err))
		return nil, 0, fmt.Errorf("db count failed: %w", err)
	}

	return toDomainInquiries(docs), total, nil
}

func (r *InquiryRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.InquiryPatch) (*domain.Inquiry, error) {
	r.logger.Info("Updating inquiry in DB", zap.String("inquiry_id", id.Hex()))

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Read != nil {
		set["read"] = *patch.Read
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		r.logger.Error("Database error during inquiry update", zap.String("inquiry_id", id.Hex()), zap.Error(err))
		return nil, fmt.Errorf("db update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		r.logger.Warn("Inquiry not found for update", zap.String("inquiry_id", id.Hex()))
		return nil, domain.ErrNotFound
	}

	var doc inquiryDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}
