package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *DbDao
}

func NewUserRepo(db *DbDao) *UserRepo {
	return &UserRepo{db: db}
}

func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleCustomer
	}
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
