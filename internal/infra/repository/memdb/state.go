package memdb

import (
	"maps"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

type sequences struct {
	user     int64
	category int64
	product  int64
	order    int64
	item     int64
}

// state 整份資料, 交易在副本上操作, 成功才替換
type state struct {
	users      map[int64]model.User
	categories map[int64]model.Category
	products   map[int64]model.Product
	orders     map[int64]model.Order
	items      map[int64]model.OrderItem
	seq        sequences
}

func newState() *state {
	return &state{
		users:      make(map[int64]model.User),
		categories: make(map[int64]model.Category),
		products:   make(map[int64]model.Product),
		orders:     make(map[int64]model.Order),
		items:      make(map[int64]model.OrderItem),
	}
}

// clone map 內存的是值, 指標欄位只讀不改, 淺拷貝即可
func (s *state) clone() *state {
	return &state{
		users:      maps.Clone(s.users),
		categories: maps.Clone(s.categories),
		products:   maps.Clone(s.products),
		orders:     maps.Clone(s.orders),
		items:      maps.Clone(s.items),
		seq:        s.seq,
	}
}

// nextID id 為 0 時自動遞增, 否則沿用指定值並推進序列
func nextID(seq *int64, id int64) int64 {
	if id == 0 {
		*seq++
		return *seq
	}
	if id > *seq {
		*seq = id
	}
	return id
}
