package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// updateOptions makes FindOneAndUpdate return the document as written.
var updateOptions = options.FindOneAndUpdate().SetReturnDocument(options.After)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	collection *mongo.Collection
	schema     *ProductSchema
}

// NewMongoProductRepository creates a repository over the named collection of db.
func NewMongoProductRepository(db *mongo.Database, collection string) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection(collection),
		schema:     NewProductSchema(),
	}
}

// FindAll retrieves all products in natural order.
func (r *MongoProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID.
func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, notFoundOr(err, "failed to get product by ID %s", id)
	}
	return &product, nil
}

// Insert validates and stores a new product document.
func (r *MongoProductRepository) Insert(ctx context.Context, fields models.ProductFields) (*models.Product, error) {
	product := models.NewProduct(fields)
	if err := r.schema.ValidateNew(&product); err != nil {
		return nil, err
	}

	now := bsonNow()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// UpdateByID applies a $set of the present fields and returns the updated document.
func (r *MongoProductRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields models.ProductFields) (*models.Product, error) {
	if err := r.schema.ValidateUpdate(fields); err != nil {
		return nil, err
	}

	update := bson.M{"$set": setDocument(fields)}

	var product models.Product
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, updateOptions).Decode(&product); err != nil {
		return nil, notFoundOr(err, "failed to update product %s", id)
	}
	return &product, nil
}

// DeleteByID removes a product and returns the deleted document.
func (r *MongoProductRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, notFoundOr(err, "failed to delete product %s", id)
	}
	return &product, nil
}

func setDocument(fields models.ProductFields) bson.M {
	set := bson.M{"updatedAt": bsonNow()}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Price != nil {
		set["price"] = *fields.Price
	}
	if fields.Category != nil {
		set["category"] = *fields.Category
	}
	if fields.ImageURL != nil {
		set["imageUrl"] = *fields.ImageURL
	}
	if fields.Stock != nil {
		set["stock"] = *fields.Stock
	}
	return set
}

func notFoundOr(err error, format string, id primitive.ObjectID) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrProductNotFound
	}
	return fmt.Errorf(format+": %w", id.Hex(), err)
}

// BSON dates carry millisecond precision.
func bsonNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
