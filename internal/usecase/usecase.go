// Package usecase 每个用例只编排一次仓储调用，并处理输入默认值。
package usecase

import (
	"context"

	"hnreader/internal/models"
)

// DefaultLimit 列表默认条数
const DefaultLimit = 30

type StoryRepository interface {
	TopStories(ctx context.Context, limit int) ([]models.Story, error)
	StoryByID(ctx context.Context, id int) (*models.Story, error)
	StoriesByIDs(ctx context.Context, ids []int) ([]models.Story, error)
	StoriesByCategory(ctx context.Context, category string, limit int) ([]models.Story, error)
}

type CommentRepository interface {
	CommentsByIDs(ctx context.Context, ids []int) ([]models.Comment, error)
	CommentByID(ctx context.Context, id int) (*models.Comment, error)
	CommentsByStoryID(ctx context.Context, storyID int) ([]models.Comment, error)
	CommentReplies(ctx context.Context, commentID int) ([]models.Comment, error)
}

func cloneStories(stories []models.Story) []models.Story {
	out := make([]models.Story, 0, len(stories))
	for _, s := range stories {
		out = append(out, s.Clone())
	}
	return out
}
