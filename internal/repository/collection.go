package repository

import (
	"context"
	"errors"

	"fambalance/internal/store"
)

// ErrNotFound is returned by updates that target a missing record
var ErrNotFound = errors.New("record not found")

// collection is one JSON-array namespace of the store. Every call loads the
// whole array; writes replace it.
type collection[T any] struct {
	store store.Store
	key   string
	id    func(*T) string
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	return store.LoadList[T](ctx, c.store, c.key)
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	return store.SaveList(ctx, c.store, c.key, items)
}

// find returns a copy of the first item matching pred, or nil
func (c collection[T]) find(ctx context.Context, pred func(*T) bool) (*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if pred(&items[i]) {
			found := items[i]
			return &found, nil
		}
	}
	return nil, nil
}

// filter returns every item matching pred in stored order
func (c collection[T]) filter(ctx context.Context, pred func(*T) bool) ([]T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for i := range items {
		if pred(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out, nil
}

func (c collection[T]) getByID(ctx context.Context, id string) (*T, error) {
	return c.find(ctx, func(item *T) bool { return c.id(item) == id })
}

func (c collection[T]) insert(ctx context.Context, item T) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	return c.save(ctx, append(items, item))
}

// replace overwrites the record with the same id
func (c collection[T]) replace(ctx context.Context, item T) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	id := c.id(&item)
	for i := range items {
		if c.id(&items[i]) == id {
			items[i] = item
			return c.save(ctx, items)
		}
	}
	return ErrNotFound
}
