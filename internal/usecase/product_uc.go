package usecase

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rajasharmaa/dttt/internal/domain"
	"github.com/rajasharmaa/dttt/internal/platform/logger"
)

const (
	defaultPageSize         = 50
	defaultCategoryPageSize = 20
	maxPageSize             = 100
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ProductCache is a read-through cache for individual products. A cache miss
// returns (nil, nil).
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
}

// ProductUsecase serves the read-only product catalog.
type ProductUsecase struct {
	repo   domain.ProductRepository
	cache  ProductCache // optional
	logger *logger.Logger
}

func NewProductUsecase(repo domain.ProductRepository, cache ProductCache, log *logger.Logger) *ProductUsecase {
	return &ProductUsecase{
		repo:   repo,
		cache:  cache,
		logger: log.Named("ProductUsecase"),
	}
}

// List returns a page of products, optionally narrowed by category and a
// case-insensitive name/description search.
func (uc *ProductUsecase) List(ctx context.Context, category, search string, page, limit int64) ([]*domain.Product, *Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	} else if limit > maxPageSize {
		limit = maxPageSize
	}

	products, total, err := uc.repo.Find(ctx, domain.ProductFilter{
		Category: category,
		Search:   search,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, nil, err
	}

	return products, &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// GetByID returns a single active product, consulting the cache first.
func (uc *ProductUsecase) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product ID format", domain.ErrInvalidInput)
	}

	if uc.cache != nil {
		cached, err := uc.cache.GetProduct(ctx, id)
		if err != nil {
			uc.logger.Warn("Product cache read failed", zap.String("product_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetProduct(ctx, product); err != nil {
			uc.logger.Warn("Product cache write failed", zap.String("product_id", id), zap.Error(err))
		}
	}
	return product, nil
}

// ListByCategory returns active products in a category, newest first.
func (uc *ProductUsecase) ListByCategory(ctx context.Context, category string, limit int64) ([]*domain.Product, error) {
	if limit < 1 {
		limit = defaultCategoryPageSize
	} else if limit > maxPageSize {
		limit = maxPageSize
	}
	return uc.repo.FindByCategory(ctx, category, limit)
}
