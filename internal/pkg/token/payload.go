package token

import (
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

type Payload struct {
	ID        uuid.UUID  `json:"id"`
	UserID    int64      `json:"user_id"`
	Role      model.Role `json:"role"`
	IssuedAt  time.Time  `json:"issued_at"`
	ExpiredAt time.Time  `json:"expired_at"`
}

func NewPayload(userID int64, role model.Role, duration time.Duration) (*Payload, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Payload{
		ID:        tokenID,
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiredAt: now.Add(duration),
	}, nil
}

func (p *Payload) Valid() error {
	if time.Now().After(p.ExpiredAt) {
		return ErrExpiredToken
	}
	if p.UserID <= 0 || !p.Role.IsValid() {
		return ErrInvalidToken
	}
	return nil
}
