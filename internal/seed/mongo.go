package seed

import (
	"context"
	"fmt"
	"time"

	"bizarre-bazaar/internal/model"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection  = "products"
	suppliersCollection = "suppliers"
	reviewsCollection   = "reviews"
)

type productDocument struct {
	ID         string  `bson:"_id"`
	Name       string  `bson:"name"`
	Category   string  `bson:"category"`
	Price      float64 `bson:"price"`
	Stock      int     `bson:"stock"`
	Status     string  `bson:"status"`
	SupplierID string  `bson:"supplier_id"`
}

type supplierDocument struct {
	ID           string  `bson:"_id"`
	Name         string  `bson:"name"`
	Location     string  `bson:"location"`
	Phone        string  `bson:"phone"`
	Email        string  `bson:"email"`
	Rating       float64 `bson:"rating"`
	TotalReviews int     `bson:"total_reviews"`
}

type reviewDocument struct {
	ID           string    `bson:"_id"`
	ProductID    string    `bson:"product_id"`
	CustomerName string    `bson:"customer_name"`
	Rating       int       `bson:"rating"`
	Comment      string    `bson:"comment"`
	CreatedAt    time.Time `bson:"created_at"`
}

// MongoSource reads the seed from the products, suppliers and reviews
// collections, ordered by _id.
type MongoSource struct {
	DB *mongo.Database
}

func (MongoSource) Name() string { return "mongo" }

func (s MongoSource) Load(ctx context.Context) (*model.Catalog, error) {
	ctx, span := SeedTracer.Start(ctx, "MongoSource.Load")
	defer span.End()

	var (
		products  []productDocument
		suppliers []supplierDocument
		reviews   []reviewDocument
	)
	if err := findAll(ctx, s.DB.Collection(productsCollection), &products); err != nil {
		return nil, err
	}
	if err := findAll(ctx, s.DB.Collection(suppliersCollection), &suppliers); err != nil {
		return nil, err
	}
	if err := findAll(ctx, s.DB.Collection(reviewsCollection), &reviews); err != nil {
		return nil, err
	}

	c := &model.Catalog{
		Products:  make([]model.Product, 0, len(products)),
		Suppliers: make([]model.Supplier, 0, len(suppliers)),
		Reviews:   make([]model.Review, 0, len(reviews)),
	}
	for _, d := range products {
		c.Products = append(c.Products, model.Product{
			ID:         d.ID,
			Name:       d.Name,
			Category:   model.Category(d.Category),
			Price:      decimal.NewFromFloat(d.Price).Round(2),
			Stock:      d.Stock,
			Status:     model.ProductStatus(d.Status),
			SupplierID: d.SupplierID,
		})
	}
	for _, d := range suppliers {
		c.Suppliers = append(c.Suppliers, model.Supplier(d))
	}
	for _, d := range reviews {
		c.Reviews = append(c.Reviews, model.Review{
			ID:           d.ID,
			ProductID:    d.ProductID,
			CustomerName: d.CustomerName,
			Rating:       d.Rating,
			Comment:      d.Comment,
			CreatedAt:    d.CreatedAt.UTC(),
		})
	}
	return c, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, out *[]T) error {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return nil
}
