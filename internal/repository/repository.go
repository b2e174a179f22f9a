// Package repository 把 HN API 的原始记录校验、过滤后转换为领域实体。
package repository

import (
	"context"
	"errors"

	"hnreader/internal/models"
)

// DefaultLimit 列表默认条数
const DefaultLimit = 30

var ErrUnknownCategory = errors.New("unknown category")

// ItemSource 由 *hnapi.Client 实现
type ItemSource interface {
	StoryIDs(ctx context.Context, list string) ([]int, error)
	Item(ctx context.Context, id int) (*models.Item, error)
	Items(ctx context.Context, ids []int) ([]*models.Item, error)
}

// UserSource 由 *hnapi.Client 实现
type UserSource interface {
	User(ctx context.Context, id string) (*models.UserRecord, error)
	Users(ctx context.Context, ids []string) ([]*models.UserRecord, error)
}
