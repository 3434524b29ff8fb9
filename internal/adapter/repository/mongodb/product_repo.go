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

const productCollectionName = "products"

// ProductRepository implements domain.ProductRepository using MongoDB. The
// catalog is written by a separate management process; this repository only
// reads.
type ProductRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewProductRepository(db *mongo.Database, log *logger.Logger) *ProductRepository {
	collection := db.Collection(productCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("Failed to create indexes for products collection (may already exist)", zap.Error(err))
	}

	return &ProductRepository{
		collection: collection,
		logger:     log.Named("ProductRepository"),
	}
}

func (r *ProductRepository) Find(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	r.logger.Debug("Finding products",
		zap.String("category", filter.Category),
		zap.String("search", filter.Search),
		zap.Int64("page", filter.Page),
		zap.Int64("limit", filter.Limit))

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		query["$or"] = []bson.M{
			{"name": bson.M{"$regex": filter.Search, "$options": "i"}},
			{"description": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
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
		r.logger.Error("Database error finding products", zap.Error(err))
		return nil, 0, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Error decoding products", zap.Error(err))
		return nil, 0, fmt.Errorf("db cursor all failed: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		r.logger.Error("Database error counting products", zap.Error(err))
		return nil, 0, fmt.Errorf("db count failed: %w", err)
	}

	return toDomainProducts(docs), total, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.logger.Debug("Getting product by ID", zap.String("product_id", id.Hex()))
	var doc productDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "active": true}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Database error fetching product", zap.String("product_id", id.Hex()), zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string, limit int64) ([]*domain.Product, error) {
	r.logger.Debug("Finding products by category", zap.String("category", category), zap.Int64("limit", limit))

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"category": category, "active": true}, findOptions)
	if err != nil {
		r.logger.Error("Database error finding products by category", zap.String("category", category), zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Error decoding products by category", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}

	return toDomainProducts(docs), nil
}
