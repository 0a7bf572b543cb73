// Package productrepo persists the product catalog with GORM.
package productrepo

import (
	"bakery/internal/core/domain/model/product"
)

// ProductDTO is the database row behind a product. The name carries a unique
// index on its lowercased form so duplicate products surface as a constraint
// violation regardless of casing.
type ProductDTO struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Version int64  `gorm:"not null"`
	Name    string `gorm:"size:255;not null;index:uniq_products_name_lower,unique,expression:lower(name)"`
	Price   int    `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:      p.ID(),
		Version: p.Version(),
		Name:    p.Name(),
		Price:   p.Price(),
	}
}

// ToDomain rebuilds the domain entity from its row. Exported because the
// order repository reuses it when loading item products.
func ToDomain(dto ProductDTO) *product.Product {
	return product.Restore(dto.ID, dto.Version, dto.Name, dto.Price)
}
