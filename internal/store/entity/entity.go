package entity

import "gorm.io/gorm"

// AutoMigrate creates or updates every store table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Product{},
		&ProductVariant{},
		&Inventory{},
		&InventoryTransaction{},
		&Customer{},
		&Supplier{},
		&Sale{},
		&SaleItem{},
	)
}

// DefaultCategories are seeded on first start so the catalog screens are
// never empty.
var DefaultCategories = []Category{
	{Name: "Camisetas", Description: "Todo tipo de camisetas"},
	{Name: "Pantalones", Description: "Pantalones para hombre y mujer"},
	{Name: "Accesorios", Description: "Complementos de moda"},
	{Name: "Vestidos", Description: "Vestidos para mujer"},
	{Name: "Chaquetas", Description: "Chaquetas y abrigos"},
}

// SeedCategories inserts the default categories, skipping names that exist.
func SeedCategories(db *gorm.DB) error {
	for _, c := range DefaultCategories {
		var count int64
		if err := db.Model(&Category{}).Where("name = ?", c.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&c).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
