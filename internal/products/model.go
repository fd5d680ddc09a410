package products

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid product id")
	ErrStoreValidation = errors.New("document failed collection validation")
)

const (
	EventsQueue  = "products.events"
	EventCreated = "product_created"
	EventUpdated = "product_updated"
	EventDeleted = "product_deleted"
)

// Product is the stored document shape.
type Product struct {
	ID                              primitive.ObjectID `bson:"_id,omitempty"`
	ProductName                     string             `bson:"productName"`
	StorageTemperature              float64            `bson:"storageTemperature"`
	RelativeHumidity                float64            `bson:"relativeHumidity"`
	ApproximateStorageLife          int                `bson:"approximateStorageLife"`
	WaterContentPercent             float64            `bson:"waterContentPercent"`
	HighestFreezingPointTemperature float64            `bson:"highestFreezingPointTemperature"`
	SpecificHeatAboveFreezingPoint  float64            `bson:"specificHeatAboveFreezingPoint"`
	SpecificHeatBelowFreezingPoint  float64            `bson:"specificHeatBelowFreezingPoint"`
	LatentHeat                      float64            `bson:"latentHeat"`
	CreatedAt                       time.Time          `bson:"createdAt"`
	UpdatedAt                       time.Time          `bson:"updatedAt"`
}

// ProductResponse is the API-facing shape: hex string id, RFC3339 timestamps.
type ProductResponse struct {
	ID                              string    `json:"id" example:"665f1f77bcf86cd799439011"`
	ProductName                     string    `json:"productName" example:"Frozen Peas"`
	StorageTemperature              float64   `json:"storageTemperature" example:"-18"`
	RelativeHumidity                float64   `json:"relativeHumidity" example:"90"`
	ApproximateStorageLife          int       `json:"approximateStorageLife" example:"365"`
	WaterContentPercent             float64   `json:"waterContentPercent" example:"80"`
	HighestFreezingPointTemperature float64   `json:"highestFreezingPointTemperature" example:"-1"`
	SpecificHeatAboveFreezingPoint  float64   `json:"specificHeatAboveFreezingPoint" example:"3.3"`
	SpecificHeatBelowFreezingPoint  float64   `json:"specificHeatBelowFreezingPoint" example:"1.8"`
	LatentHeat                      float64   `json:"latentHeat" example:"280"`
	CreatedAt                       time.Time `json:"createdAt" example:"2026-02-24T12:00:00Z"`
	UpdatedAt                       time.Time `json:"updatedAt" example:"2026-02-24T12:00:00Z"`
}

// Response maps the stored document to the API shape.
func (p Product) Response() ProductResponse {
	return ProductResponse{
		ID:                              p.ID.Hex(),
		ProductName:                     p.ProductName,
		StorageTemperature:              p.StorageTemperature,
		RelativeHumidity:                p.RelativeHumidity,
		ApproximateStorageLife:          p.ApproximateStorageLife,
		WaterContentPercent:             p.WaterContentPercent,
		HighestFreezingPointTemperature: p.HighestFreezingPointTemperature,
		SpecificHeatAboveFreezingPoint:  p.SpecificHeatAboveFreezingPoint,
		SpecificHeatBelowFreezingPoint:  p.SpecificHeatBelowFreezingPoint,
		LatentHeat:                      p.LatentHeat,
		CreatedAt:                       p.CreatedAt.UTC(),
		UpdatedAt:                       p.UpdatedAt.UTC(),
	}
}

// CreateProductInput is a full field set. Numeric fields are pointers so that
// a legitimate zero (e.g. waterContentPercent=0) is distinguishable from a
// missing field.
type CreateProductInput struct {
	ProductName                     string   `json:"productName" validate:"required,min=3,max=100"`
	StorageTemperature              *float64 `json:"storageTemperature" validate:"required,gte=-273.15,lte=1000"`
	RelativeHumidity                *float64 `json:"relativeHumidity" validate:"required,gte=0,lte=100"`
	ApproximateStorageLife          *int     `json:"approximateStorageLife" validate:"required,gte=1,lte=3650"`
	WaterContentPercent             *float64 `json:"waterContentPercent" validate:"required,gte=0,lte=100"`
	HighestFreezingPointTemperature *float64 `json:"highestFreezingPointTemperature" validate:"required,gte=-273.15,lte=100"`
	SpecificHeatAboveFreezingPoint  *float64 `json:"specificHeatAboveFreezingPoint" validate:"required,gte=0"`
	SpecificHeatBelowFreezingPoint  *float64 `json:"specificHeatBelowFreezingPoint" validate:"required,gte=0"`
	LatentHeat                      *float64 `json:"latentHeat" validate:"required,gte=0"`
}

// Record converts a validated create input into a document. Must only be
// called after validation, which guarantees every pointer is set.
func (in CreateProductInput) Record() Product {
	return Product{
		ProductName:                     in.ProductName,
		StorageTemperature:              *in.StorageTemperature,
		RelativeHumidity:                *in.RelativeHumidity,
		ApproximateStorageLife:          *in.ApproximateStorageLife,
		WaterContentPercent:             *in.WaterContentPercent,
		HighestFreezingPointTemperature: *in.HighestFreezingPointTemperature,
		SpecificHeatAboveFreezingPoint:  *in.SpecificHeatAboveFreezingPoint,
		SpecificHeatBelowFreezingPoint:  *in.SpecificHeatBelowFreezingPoint,
		LatentHeat:                      *in.LatentHeat,
	}
}

// UpdateProductInput is a partial field set: nil means "leave untouched".
type UpdateProductInput struct {
	ProductName                     *string  `json:"productName,omitempty" validate:"omitempty,min=3,max=100"`
	StorageTemperature              *float64 `json:"storageTemperature,omitempty" validate:"omitempty,gte=-273.15,lte=1000"`
	RelativeHumidity                *float64 `json:"relativeHumidity,omitempty" validate:"omitempty,gte=0,lte=100"`
	ApproximateStorageLife          *int     `json:"approximateStorageLife,omitempty" validate:"omitempty,gte=1,lte=3650"`
	WaterContentPercent             *float64 `json:"waterContentPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	HighestFreezingPointTemperature *float64 `json:"highestFreezingPointTemperature,omitempty" validate:"omitempty,gte=-273.15,lte=100"`
	SpecificHeatAboveFreezingPoint  *float64 `json:"specificHeatAboveFreezingPoint,omitempty" validate:"omitempty,gte=0"`
	SpecificHeatBelowFreezingPoint  *float64 `json:"specificHeatBelowFreezingPoint,omitempty" validate:"omitempty,gte=0"`
	LatentHeat                      *float64 `json:"latentHeat,omitempty" validate:"omitempty,gte=0"`
}

// Fields returns the supplied fields as a $set document.
func (in UpdateProductInput) Fields() bson.M {
	fields := bson.M{}
	if in.ProductName != nil {
		fields["productName"] = *in.ProductName
	}
	if in.StorageTemperature != nil {
		fields["storageTemperature"] = *in.StorageTemperature
	}
	if in.RelativeHumidity != nil {
		fields["relativeHumidity"] = *in.RelativeHumidity
	}
	if in.ApproximateStorageLife != nil {
		fields["approximateStorageLife"] = *in.ApproximateStorageLife
	}
	if in.WaterContentPercent != nil {
		fields["waterContentPercent"] = *in.WaterContentPercent
	}
	if in.HighestFreezingPointTemperature != nil {
		fields["highestFreezingPointTemperature"] = *in.HighestFreezingPointTemperature
	}
	if in.SpecificHeatAboveFreezingPoint != nil {
		fields["specificHeatAboveFreezingPoint"] = *in.SpecificHeatAboveFreezingPoint
	}
	if in.SpecificHeatBelowFreezingPoint != nil {
		fields["specificHeatBelowFreezingPoint"] = *in.SpecificHeatBelowFreezingPoint
	}
	if in.LatentHeat != nil {
		fields["latentHeat"] = *in.LatentHeat
	}
	return fields
}

// ProductEvent is the message published to the events queue on every
// successful mutation.
type ProductEvent struct {
	EventType   string    `json:"event_type"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
