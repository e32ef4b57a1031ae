package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 共用時間欄位, 軟刪除後歷史訂單仍可關聯到商品
type BaseModel struct {
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
