package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coldstore/internal/products"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collectionName     = "products"
	healthCheckTimeout = 2 * time.Second

	// Server error code for a write rejected by the collection's
	// $jsonSchema validator.
	codeDocumentValidationFailure = 121
)

type MongoRepository struct {
	conn *Connector
}

func NewMongo(conn *Connector) *MongoRepository {
	return &MongoRepository{conn: conn}
}

func (r *MongoRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.conn.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(collectionName), nil
}

// Insert stores a new document, assigning its identifier and both timestamps.
func (r *MongoRepository) Insert(ctx context.Context, p products.Product) (products.Product, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return products.Product{}, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, p); err != nil {
		if isDocumentValidationFailure(err) {
			return products.Product{}, fmt.Errorf("insert product: %w", products.ErrStoreValidation)
		}
		return products.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (products.Product, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return products.Product{}, err
	}

	var p products.Product
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return products.Product{}, products.ErrNotFound
		}
		return products.Product{}, fmt.Errorf("find product %s: %w", id.Hex(), err)
	}
	return p, nil
}

// List returns one page in creation order. An offset past the end yields an
// empty page, not an error.
func (r *MongoRepository) List(ctx context.Context, limit, offset int) ([]products.Product, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer cursor.Close(ctx)

	list := make([]products.Product, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return list, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// Update applies a partial field set and refreshes updatedAt, returning the
// post-image.
func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (products.Product, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return products.Product{}, err
	}

	set := bson.M{"updatedAt": time.Now().UTC().Truncate(time.Millisecond)}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p products.Product
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return products.Product{}, products.ErrNotFound
		}
		if isDocumentValidationFailure(err) {
			return products.Product{}, fmt.Errorf("update product %s: %w", id.Hex(), products.ErrStoreValidation)
		}
		return products.Product{}, fmt.Errorf("update product %s: %w", id.Hex(), err)
	}
	return p, nil
}

// Delete removes the document and returns it.
func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (products.Product, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return products.Product{}, err
	}

	var p products.Product
	if err := coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return products.Product{}, products.ErrNotFound
		}
		return products.Product{}, fmt.Errorf("delete product %s: %w", id.Hex(), err)
	}
	return p, nil
}

func (r *MongoRepository) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	db, err := r.conn.Database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

func isDocumentValidationFailure(err error) bool {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == codeDocumentValidationFailure {
				return true
			}
		}
	}
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == codeDocumentValidationFailure
}
