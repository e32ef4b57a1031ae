package model

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"not null;type:varchar(50)" json:"username"`
	Email     string    `gorm:"unique;not null;type:varchar(100)" json:"email"`
	Role      Role      `gorm:"not null;type:varchar(20);default:customer" json:"role"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}
