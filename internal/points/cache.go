package points

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
	"github.com/smartcontractkit/toyecc/internal/curve"
)

// Cache keeps the most recently enumerated tables, keyed by the curve equation.
type Cache struct {
	tables *lru.Cache
}

func NewCache(size int) (*Cache, error) {
	tables, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{tables}, nil
}

// Table returns the cached table of c, enumerating it on a miss.
func (c *Cache) Table(ctx context.Context, cv *curve.Curve) (*Table, error) {
	key := cv.String()
	if t, ok := c.tables.Get(key); ok {
		return t.(*Table), nil
	}
	t, err := Enumerate(ctx, cv)
	if err != nil {
		return nil, err
	}
	c.tables.Add(key, t)
	return t, nil
}

func (c *Cache) Len() int {
	return c.tables.Len()
}
