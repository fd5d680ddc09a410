package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"coldstore/internal/products"
	"coldstore/internal/products/validation"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr[T any](v T) *T { return &v }

type mockRepo struct {
	insertFn func(ctx context.Context, p products.Product) (products.Product, error)
	findFn   func(ctx context.Context, id primitive.ObjectID) (products.Product, error)
	listFn   func(ctx context.Context, limit, offset int) ([]products.Product, error)
	countFn  func(ctx context.Context) (int64, error)
	updateFn func(ctx context.Context, id primitive.ObjectID, fields bson.M) (products.Product, error)
	deleteFn func(ctx context.Context, id primitive.ObjectID) (products.Product, error)
}

func (m *mockRepo) Insert(ctx context.Context, p products.Product) (products.Product, error) {
	return m.insertFn(ctx, p)
}
func (m *mockRepo) FindByID(ctx context.Context, id primitive.ObjectID) (products.Product, error) {
	return m.findFn(ctx, id)
}
func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]products.Product, error) {
	return m.listFn(ctx, limit, offset)
}
func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}
func (m *mockRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (products.Product, error) {
	return m.updateFn(ctx, id, fields)
}
func (m *mockRepo) Delete(ctx context.Context, id primitive.ObjectID) (products.Product, error) {
	return m.deleteFn(ctx, id)
}

type mockPublisher struct {
	events []products.ProductEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, event products.ProductEvent) error {
	m.events = append(m.events, event)
	return m.err
}

func newTestService(repo Repository, pub Publisher) *Service {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return New(repo, pub, logger, Counters{
		Created: prometheus.NewCounter(prometheus.CounterOpts{Name: "t_created", Help: "t"}),
		Updated: prometheus.NewCounter(prometheus.CounterOpts{Name: "t_updated", Help: "t"}),
		Deleted: prometheus.NewCounter(prometheus.CounterOpts{Name: "t_deleted", Help: "t"}),
	})
}

func validInput() products.CreateProductInput {
	return products.CreateProductInput{
		ProductName:                     "Frozen Peas",
		StorageTemperature:              ptr(-18.0),
		RelativeHumidity:                ptr(90.0),
		ApproximateStorageLife:          ptr(365),
		WaterContentPercent:             ptr(80.0),
		HighestFreezingPointTemperature: ptr(-1.0),
		SpecificHeatAboveFreezingPoint:  ptr(3.3),
		SpecificHeatBelowFreezingPoint:  ptr(1.8),
		LatentHeat:                      ptr(280.0),
	}
}

func TestCreateProduct(t *testing.T) {
	errDB := errors.New("store down")

	t.Run("success maps record and publishes event", func(t *testing.T) {
		repo := &mockRepo{
			insertFn: func(_ context.Context, p products.Product) (products.Product, error) {
				p.ID = primitive.NewObjectID()
				p.CreatedAt = time.Now().UTC()
				p.UpdatedAt = p.CreatedAt
				return p, nil
			},
		}
		pub := &mockPublisher{}
		svc := newTestService(repo, pub)

		created, err := svc.CreateProduct(context.Background(), validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Fatal("expected assigned id")
		}
		if created.ProductName != "Frozen Peas" {
			t.Fatalf("want name Frozen Peas, got %q", created.ProductName)
		}
		if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Fatal("expected both timestamps set")
		}
		if len(pub.events) != 1 || pub.events[0].EventType != products.EventCreated {
			t.Fatalf("want one %s event, got %+v", products.EventCreated, pub.events)
		}
		if pub.events[0].ProductID != created.ID {
			t.Fatalf("event product id %q != %q", pub.events[0].ProductID, created.ID)
		}
	})

	t.Run("invalid input is rejected before the store is touched", func(t *testing.T) {
		repo := &mockRepo{
			insertFn: func(_ context.Context, _ products.Product) (products.Product, error) {
				t.Fatal("insert must not be called")
				return products.Product{}, nil
			},
		}
		svc := newTestService(repo, &mockPublisher{})

		in := validInput()
		in.RelativeHumidity = ptr(101.0)

		_, err := svc.CreateProduct(context.Background(), in)
		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("want validation error, got %v", err)
		}
		if len(verr.Fields) != 1 || verr.Fields[0].Field != "relativeHumidity" {
			t.Fatalf("want [relativeHumidity], got %+v", verr.Fields)
		}
	})

	t.Run("repo error is wrapped", func(t *testing.T) {
		repo := &mockRepo{
			insertFn: func(_ context.Context, _ products.Product) (products.Product, error) {
				return products.Product{}, errDB
			},
		}
		svc := newTestService(repo, &mockPublisher{})

		_, err := svc.CreateProduct(context.Background(), validInput())
		if !errors.Is(err, errDB) {
			t.Fatalf("want error wrapping %v, got %v", errDB, err)
		}
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		repo := &mockRepo{
			insertFn: func(_ context.Context, p products.Product) (products.Product, error) {
				p.ID = primitive.NewObjectID()
				return p, nil
			},
		}
		pub := &mockPublisher{err: errors.New("broker gone")}
		svc := newTestService(repo, pub)

		if _, err := svc.CreateProduct(context.Background(), validInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		svc := newTestService(&mockRepo{}, &mockPublisher{})
		_, err := svc.GetProduct(context.Background(), "not-a-hex-id")
		if !errors.Is(err, products.ErrInvalidID) {
			t.Fatalf("want ErrInvalidID, got %v", err)
		}
	})

	t.Run("not found passes through", func(t *testing.T) {
		repo := &mockRepo{
			findFn: func(_ context.Context, _ primitive.ObjectID) (products.Product, error) {
				return products.Product{}, products.ErrNotFound
			},
		}
		svc := newTestService(repo, &mockPublisher{})
		_, err := svc.GetProduct(context.Background(), primitive.NewObjectID().Hex())
		if !errors.Is(err, products.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestListProducts(t *testing.T) {
	t.Run("computes offset from page and limit", func(t *testing.T) {
		var gotLimit, gotOffset int
		repo := &mockRepo{
			listFn: func(_ context.Context, limit, offset int) ([]products.Product, error) {
				gotLimit, gotOffset = limit, offset
				return []products.Product{}, nil
			},
			countFn: func(_ context.Context) (int64, error) { return 0, nil },
		}
		svc := newTestService(repo, &mockPublisher{})

		if _, _, err := svc.ListProducts(context.Background(), 3, 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotLimit != 5 || gotOffset != 10 {
			t.Fatalf("want limit=5 offset=10, got limit=%d offset=%d", gotLimit, gotOffset)
		}
	})

	t.Run("clamps page and limit", func(t *testing.T) {
		var gotLimit, gotOffset int
		repo := &mockRepo{
			listFn: func(_ context.Context, limit, offset int) ([]products.Product, error) {
				gotLimit, gotOffset = limit, offset
				return nil, nil
			},
			countFn: func(_ context.Context) (int64, error) { return 0, nil },
		}
		svc := newTestService(repo, &mockPublisher{})

		if _, _, err := svc.ListProducts(context.Background(), 0, -4); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotLimit != defaultPageSize || gotOffset != 0 {
			t.Fatalf("want defaults, got limit=%d offset=%d", gotLimit, gotOffset)
		}
	})

	t.Run("returns mapped page and total", func(t *testing.T) {
		id := primitive.NewObjectID()
		repo := &mockRepo{
			listFn: func(_ context.Context, _, _ int) ([]products.Product, error) {
				return []products.Product{{ID: id, ProductName: "Frozen Peas"}}, nil
			},
			countFn: func(_ context.Context) (int64, error) { return 11, nil },
		}
		svc := newTestService(repo, &mockPublisher{})

		items, total, err := svc.ListProducts(context.Background(), 1, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 11 {
			t.Fatalf("want total 11, got %d", total)
		}
		if len(items) != 1 || items[0].ID != id.Hex() {
			t.Fatalf("unexpected items: %+v", items)
		}
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("only supplied fields reach the store", func(t *testing.T) {
		var gotFields bson.M
		repo := &mockRepo{
			updateFn: func(_ context.Context, _ primitive.ObjectID, fields bson.M) (products.Product, error) {
				gotFields = fields
				return products.Product{ID: primitive.NewObjectID()}, nil
			},
		}
		pub := &mockPublisher{}
		svc := newTestService(repo, pub)

		in := products.UpdateProductInput{
			RelativeHumidity: ptr(55.0),
			LatentHeat:       ptr(300.0),
		}
		if _, err := svc.UpdateProduct(context.Background(), primitive.NewObjectID().Hex(), in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(gotFields) != 2 {
			t.Fatalf("want 2 fields, got %v", gotFields)
		}
		if gotFields["relativeHumidity"] != 55.0 || gotFields["latentHeat"] != 300.0 {
			t.Fatalf("unexpected fields: %v", gotFields)
		}
		if len(pub.events) != 1 || pub.events[0].EventType != products.EventUpdated {
			t.Fatalf("want one %s event, got %+v", products.EventUpdated, pub.events)
		}
	})

	t.Run("out-of-range field rejected", func(t *testing.T) {
		svc := newTestService(&mockRepo{}, &mockPublisher{})

		in := products.UpdateProductInput{WaterContentPercent: ptr(130.0)}
		_, err := svc.UpdateProduct(context.Background(), primitive.NewObjectID().Hex(), in)
		var verr *validation.Error
		if !errors.As(err, &verr) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("malformed id rejected before validation", func(t *testing.T) {
		svc := newTestService(&mockRepo{}, &mockPublisher{})
		_, err := svc.UpdateProduct(context.Background(), "zzz", products.UpdateProductInput{})
		if !errors.Is(err, products.ErrInvalidID) {
			t.Fatalf("want ErrInvalidID, got %v", err)
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("success publishes event", func(t *testing.T) {
		id := primitive.NewObjectID()
		repo := &mockRepo{
			deleteFn: func(_ context.Context, got primitive.ObjectID) (products.Product, error) {
				if got != id {
					t.Fatalf("want id %s, got %s", id.Hex(), got.Hex())
				}
				return products.Product{ID: id, ProductName: "Frozen Peas"}, nil
			},
		}
		pub := &mockPublisher{}
		svc := newTestService(repo, pub)

		if _, err := svc.DeleteProduct(context.Background(), id.Hex()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pub.events) != 1 || pub.events[0].EventType != products.EventDeleted {
			t.Fatalf("want one %s event, got %+v", products.EventDeleted, pub.events)
		}
	})

	t.Run("not found passes through", func(t *testing.T) {
		repo := &mockRepo{
			deleteFn: func(_ context.Context, _ primitive.ObjectID) (products.Product, error) {
				return products.Product{}, products.ErrNotFound
			},
		}
		svc := newTestService(repo, &mockPublisher{})
		_, err := svc.DeleteProduct(context.Background(), primitive.NewObjectID().Hex())
		if !errors.Is(err, products.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

// memRepo backs the end-to-end service properties without a real store.
type memRepo struct {
	mu   sync.Mutex
	docs []products.Product
}

func (m *memRepo) Insert(_ context.Context, p products.Product) (products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.docs = append(m.docs, p)
	return p, nil
}

func (m *memRepo) FindByID(_ context.Context, id primitive.ObjectID) (products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return products.Product{}, products.ErrNotFound
}

func (m *memRepo) List(_ context.Context, limit, offset int) ([]products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.docs) {
		return []products.Product{}, nil
	}
	end := offset + limit
	if end > len(m.docs) {
		end = len(m.docs)
	}
	page := make([]products.Product, end-offset)
	copy(page, m.docs[offset:end])
	return page, nil
}

func (m *memRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.docs)), nil
}

func (m *memRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) (products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.docs {
		if d.ID != id {
			continue
		}
		if v, ok := fields["productName"]; ok {
			d.ProductName = v.(string)
		}
		if v, ok := fields["storageTemperature"]; ok {
			d.StorageTemperature = v.(float64)
		}
		if v, ok := fields["relativeHumidity"]; ok {
			d.RelativeHumidity = v.(float64)
		}
		if v, ok := fields["approximateStorageLife"]; ok {
			d.ApproximateStorageLife = v.(int)
		}
		if v, ok := fields["waterContentPercent"]; ok {
			d.WaterContentPercent = v.(float64)
		}
		if v, ok := fields["highestFreezingPointTemperature"]; ok {
			d.HighestFreezingPointTemperature = v.(float64)
		}
		if v, ok := fields["specificHeatAboveFreezingPoint"]; ok {
			d.SpecificHeatAboveFreezingPoint = v.(float64)
		}
		if v, ok := fields["specificHeatBelowFreezingPoint"]; ok {
			d.SpecificHeatBelowFreezingPoint = v.(float64)
		}
		if v, ok := fields["latentHeat"]; ok {
			d.LatentHeat = v.(float64)
		}
		d.UpdatedAt = time.Now().UTC().Add(time.Millisecond)
		m.docs[i] = d
		return d, nil
	}
	return products.Product{}, products.ErrNotFound
}

func (m *memRepo) Delete(_ context.Context, id primitive.ObjectID) (products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.docs {
		if d.ID == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return d, nil
		}
	}
	return products.Product{}, products.ErrNotFound
}

func TestServiceRoundTrip(t *testing.T) {
	svc := newTestService(&memRepo{}, &mockPublisher{})
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("create then read yields equal record", func(t *testing.T) {
		got, err := svc.GetProduct(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != created {
			t.Fatalf("round-trip mismatch:\n created %+v\n got     %+v", created, got)
		}
	})

	t.Run("list contains the record with correct metadata", func(t *testing.T) {
		items, total, err := svc.ListProducts(ctx, 1, 5)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if total != 1 {
			t.Fatalf("want total 1, got %d", total)
		}
		if len(items) != 1 || items[0].ID != created.ID {
			t.Fatalf("unexpected page: %+v", items)
		}
	})

	t.Run("partial update changes only supplied fields", func(t *testing.T) {
		updated, err := svc.UpdateProduct(ctx, created.ID, products.UpdateProductInput{
			RelativeHumidity: ptr(85.0),
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.RelativeHumidity != 85.0 {
			t.Fatalf("want humidity 85, got %v", updated.RelativeHumidity)
		}
		if updated.ProductName != created.ProductName ||
			updated.StorageTemperature != created.StorageTemperature ||
			updated.LatentHeat != created.LatentHeat {
			t.Fatalf("unsupplied fields changed: %+v", updated)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Fatal("createdAt must not change on update")
		}
		if !updated.UpdatedAt.After(created.UpdatedAt) {
			t.Fatal("updatedAt must advance on update")
		}
	})

	t.Run("delete then read yields not-found", func(t *testing.T) {
		if _, err := svc.DeleteProduct(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		_, err := svc.GetProduct(ctx, created.ID)
		if !errors.Is(err, products.ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}
