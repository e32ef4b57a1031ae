package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunDBMigration 冪等性, 沒有新版本時不回傳錯誤
func RunDBMigration(migrationURL string, dbSource string) error {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		return err
	}
	defer migration.Close()

	err = migration.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

var serialTables = []string{"users", "categories", "products", "orders", "order_items"}

// SyncSequences 以指定ID寫入種子資料後, 把 BIGSERIAL 序列推進到目前最大值
func (s *GormStore) SyncSequences(ctx context.Context) error {
	for _, table := range serialTables {
		sql := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
			table, table,
		)
		if err := s.dao.WithContext(ctx).Exec(sql).Error; err != nil {
			return fmt.Errorf("sync sequence of %s: %w", table, err)
		}
	}
	return nil
}
