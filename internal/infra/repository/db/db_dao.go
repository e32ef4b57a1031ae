package db

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// Queries 同一個連線(或交易)上的所有 repository
type Queries struct {
	*ProductRepo
	*OrderRepo
	*UserRepo
}

func NewQueries(dao *DbDao) *Queries {
	return &Queries{
		ProductRepo: NewProductRepo(dao),
		OrderRepo:   NewOrderRepo(dao),
		UserRepo:    NewUserRepo(dao),
	}
}

var _ Querier = (*Queries)(nil)

type GormStore struct {
	*Queries
	dao *DbDao
}

var _ Store = (*GormStore)(nil)

func NewGormStore(conn *gorm.DB) *GormStore {
	dao := NewDbDao(conn)
	return &GormStore{
		Queries: NewQueries(dao),
		dao:     dao,
	}
}

// ExecTx 以 ReadCommitted 開交易, 扣庫存依賴條件式 UPDATE 不需要更高隔離等級
func (s *GormStore) ExecTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	txCtx := context.WithoutCancel(ctx)
	return s.dao.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		return fn(txCtx, NewQueries(NewDbDao(tx)))
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func (s *GormStore) Close() error {
	sqlDB, err := s.dao.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
