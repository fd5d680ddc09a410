package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coldstore/internal/products"
	"coldstore/internal/products/validation"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type Repository interface {
	Insert(ctx context.Context, p products.Product) (products.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (products.Product, error)
	List(ctx context.Context, limit, offset int) ([]products.Product, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (products.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (products.Product, error)
}

type Publisher interface {
	Publish(ctx context.Context, event products.ProductEvent) error
}

type Counters struct {
	Created prometheus.Counter
	Updated prometheus.Counter
	Deleted prometheus.Counter
}

type Service struct {
	repo      Repository
	publisher Publisher
	logger    *slog.Logger
	counters  Counters
}

func New(repo Repository, publisher Publisher, logger *slog.Logger, counters Counters) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		counters:  counters,
	}
}

func (s *Service) CreateProduct(ctx context.Context, in products.CreateProductInput) (products.ProductResponse, error) {
	if err := validation.ValidateCreate(&in); err != nil {
		return products.ProductResponse{}, err
	}

	created, err := s.repo.Insert(ctx, in.Record())
	if err != nil {
		return products.ProductResponse{}, fmt.Errorf("repo insert: %w", err)
	}

	s.publish(ctx, products.EventCreated, created)
	s.counters.Created.Inc()
	return created.Response(), nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (products.ProductResponse, error) {
	oid, err := parseID(id)
	if err != nil {
		return products.ProductResponse{}, err
	}

	p, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return products.ProductResponse{}, fmt.Errorf("repo find: %w", err)
	}
	return p.Response(), nil
}

// ListProducts returns one mapped page plus the total record count, so the
// caller can compute the page count.
func (s *Service) ListProducts(ctx context.Context, page, limit int) ([]products.ProductResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset := (page - 1) * limit

	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repo list: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("repo count: %w", err)
	}

	mapped := make([]products.ProductResponse, 0, len(items))
	for _, p := range items {
		mapped = append(mapped, p.Response())
	}
	return mapped, total, nil
}

// UpdateProduct applies a partial field set; unsupplied fields keep their
// prior values.
func (s *Service) UpdateProduct(ctx context.Context, id string, in products.UpdateProductInput) (products.ProductResponse, error) {
	oid, err := parseID(id)
	if err != nil {
		return products.ProductResponse{}, err
	}

	if err := validation.ValidateUpdate(&in); err != nil {
		return products.ProductResponse{}, err
	}

	updated, err := s.repo.Update(ctx, oid, in.Fields())
	if err != nil {
		return products.ProductResponse{}, fmt.Errorf("repo update: %w", err)
	}

	s.publish(ctx, products.EventUpdated, updated)
	s.counters.Updated.Inc()
	return updated.Response(), nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) (products.ProductResponse, error) {
	oid, err := parseID(id)
	if err != nil {
		return products.ProductResponse{}, err
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return products.ProductResponse{}, fmt.Errorf("repo delete: %w", err)
	}

	s.publish(ctx, products.EventDeleted, deleted)
	s.counters.Deleted.Inc()
	return deleted.Response(), nil
}

// publish is best-effort: a failed publish is logged and never fails the
// request.
func (s *Service) publish(ctx context.Context, eventType string, p products.Product) {
	err := s.publisher.Publish(ctx, products.ProductEvent{
		EventType:   eventType,
		ProductID:   p.ID.Hex(),
		ProductName: p.ProductName,
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("publish product event failed",
			"event_type", eventType,
			"product_id", p.ID.Hex(),
			"error", err,
		)
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", products.ErrInvalidID, id)
	}
	return oid, nil
}
