package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// productRow is the relational form of a product. The primary key is the
// ObjectID hex string so identifiers look the same on every backend.
type productRow struct {
	ID          string  `gorm:"primaryKey;type:varchar(24)"`
	Name        *string `gorm:"type:varchar(100)"`
	Description *string `gorm:"type:varchar(500)"`
	Price       *float64
	Category    *string
	ImageURL    *string
	Stock       *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productRow) TableName() string { return "products" }

// MigrateProducts creates or updates the products table.
func MigrateProducts(db *gorm.DB) error {
	if err := db.AutoMigrate(&productRow{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db     *gorm.DB
	schema *ProductSchema
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db:     db,
		schema: NewProductSchema(),
	}
}

// FindAll retrieves all products from the database.
func (r *GORMProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var rows []productRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	products := make([]models.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].toProduct())
	}
	return products, nil
}

// FindByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	row, err := firstProduct(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	product := row.toProduct()
	return &product, nil
}

// Insert creates a new product in the database.
func (r *GORMProductRepository) Insert(ctx context.Context, fields models.ProductFields) (*models.Product, error) {
	product := models.NewProduct(fields)
	if err := r.schema.ValidateNew(&product); err != nil {
		return nil, err
	}
	product.ID = primitive.NewObjectID()

	row := toProductRow(product)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	created := row.toProduct()
	return &created, nil
}

// UpdateByID writes the present fields of an existing product and returns the result.
func (r *GORMProductRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields models.ProductFields) (*models.Product, error) {
	if err := r.schema.ValidateUpdate(fields); err != nil {
		return nil, err
	}

	var updated productRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := firstProduct(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(row).Updates(updateColumns(fields)).Error; err != nil {
			return fmt.Errorf("failed to update product %s: %w", id.Hex(), err)
		}
		reloaded, err := firstProduct(tx, id)
		if err != nil {
			return err
		}
		updated = *reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	product := updated.toProduct()
	return &product, nil
}

// DeleteByID deletes a product by its ID and returns the removed product.
func (r *GORMProductRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var deleted productRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := firstProduct(tx, id)
		if err != nil {
			return err
		}
		res := tx.Delete(&productRow{}, "id = ?", row.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product %s: %w", id.Hex(), res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		deleted = *row
		return nil
	})
	if err != nil {
		return nil, err
	}
	product := deleted.toProduct()
	return &product, nil
}

func firstProduct(db *gorm.DB, id primitive.ObjectID) (*productRow, error) {
	var row productRow
	if err := db.First(&row, "id = ?", id.Hex()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id.Hex(), err)
	}
	return &row, nil
}

func updateColumns(fields models.ProductFields) map[string]any {
	columns := map[string]any{"updated_at": time.Now().UTC()}
	if fields.Name != nil {
		columns["name"] = *fields.Name
	}
	if fields.Description != nil {
		columns["description"] = *fields.Description
	}
	if fields.Price != nil {
		columns["price"] = *fields.Price
	}
	if fields.Category != nil {
		columns["category"] = *fields.Category
	}
	if fields.ImageURL != nil {
		columns["image_url"] = *fields.ImageURL
	}
	if fields.Stock != nil {
		columns["stock"] = *fields.Stock
	}
	return columns
}

func toProductRow(p models.Product) productRow {
	return productRow{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (row *productRow) toProduct() models.Product {
	// ids are only ever written from ObjectID.Hex, so the parse cannot fail for stored rows
	id, _ := primitive.ObjectIDFromHex(row.ID)
	return models.Product{
		ID:          id,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Category:    row.Category,
		ImageURL:    row.ImageURL,
		Stock:       row.Stock,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
