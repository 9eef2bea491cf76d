package specification

import (
	"gorm.io/gorm"
)

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// MedicineSearch matches name or short description, case-insensitively.
type MedicineSearch struct {
	Term string
}

func (s MedicineSearch) Apply(db *gorm.DB) *gorm.DB {
	like := "%" + s.Term + "%"
	return db.Where("name ILIKE ? OR short_desc ILIKE ?", like, like)
}

type MinPrice struct {
	Price float64
}

func (s MinPrice) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price >= ?", s.Price)
}

type MaxPrice struct {
	Price float64
}

func (s MaxPrice) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price <= ?", s.Price)
}
