package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsCheckViolation 例如 products.stock >= 0
func IsCheckViolation(err error) bool {
	return pgErrorCode(err) == pgCheckViolation
}

// IsForeignKeyViolation 例如 orders.user_id 指向不存在的用戶
func IsForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}
