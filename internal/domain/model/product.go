package model

import (
	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"unique;not null;type:varchar(100)" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	BaseModel
}

// Product 商品, stock 永遠 >= 0
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null;type:varchar(255)" json:"name"`
	Description *string         `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	CategoryID  *int64          `json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Featured    bool            `gorm:"not null;default:false" json:"featured"`
	ImageURL    *string         `gorm:"type:varchar(255)" json:"image_url"`
	BaseModel
}

// PriceStock 下單當下從catalog讀出的價格與庫存
type PriceStock struct {
	ProductID int64
	Price     decimal.Decimal
	Stock     int
}
