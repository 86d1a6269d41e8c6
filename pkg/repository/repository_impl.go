// Package repository is a small generic gorm store used for the
// operator-saved configuration tables.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository[T any] interface {
	Find(ctx context.Context, query *T) ([]*T, error)
	FindOne(ctx context.Context, query *T) (*T, error)
	Create(ctx context.Context, resource *T) error
	Save(ctx context.Context, resource *T) error
	Delete(ctx context.Context, query *T) error
	Count(ctx context.Context, query *T) (int64, error)
}

type store[T any] struct {
	db *gorm.DB
}

func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (r *store[T]) Find(ctx context.Context, query *T) ([]*T, error) {
	var result []*T
	err := r.db.WithContext(ctx).Where(query).Find(&result).Error
	return result, err
}

func (r *store[T]) FindOne(ctx context.Context, query *T) (*T, error) {
	var result T
	err := r.db.WithContext(ctx).Where(query).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) Create(ctx context.Context, resource *T) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *store[T]) Save(ctx context.Context, resource *T) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

func (r *store[T]) Delete(ctx context.Context, query *T) error {
	var dummy T
	return r.db.WithContext(ctx).Where(query).Delete(&dummy).Error
}

func (r *store[T]) Count(ctx context.Context, query *T) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Where(query).Count(&count).Error
	return count, err
}
