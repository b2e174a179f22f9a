package repository

import (
	"context"
	"log"

	"hnreader/internal/models"
)

type HNCommentRepository struct {
	source ItemSource
}

func NewHNCommentRepository(source ItemSource) *HNCommentRepository {
	return &HNCommentRepository{source: source}
}

func isComment(item *models.Item) bool {
	return item != nil && !item.Deleted && !item.Dead && item.Type == models.KindComment
}

// CommentsByIDs 过滤后的评论，顺序与 ids 一致
func (r *HNCommentRepository) CommentsByIDs(ctx context.Context, ids []int) ([]models.Comment, error) {
	if len(ids) == 0 {
		return []models.Comment{}, nil
	}
	items, err := r.source.Items(ctx, ids)
	if err != nil {
		log.Printf("[Repo] 批量获取评论失败: %v", err)
		return []models.Comment{}, nil
	}
	comments := make([]models.Comment, 0, len(items))
	for _, item := range items {
		if isComment(item) {
			comments = append(comments, models.NewCommentFromItem(item))
		}
	}
	return comments, nil
}

func (r *HNCommentRepository) CommentByID(ctx context.Context, id int) (*models.Comment, error) {
	item, err := r.source.Item(ctx, id)
	if err != nil {
		log.Printf("[Repo] 获取评论 %d 失败: %v", id, err)
		return nil, nil
	}
	if !isComment(item) {
		return nil, nil
	}
	comment := models.NewCommentFromItem(item)
	return &comment, nil
}

func (r *HNCommentRepository) CommentsByStoryID(ctx context.Context, storyID int) ([]models.Comment, error) {
	return r.childrenOf(ctx, storyID)
}

func (r *HNCommentRepository) CommentReplies(ctx context.Context, commentID int) ([]models.Comment, error) {
	return r.childrenOf(ctx, commentID)
}

// childrenOf 读取父节点的 kids，再按 id 拉取
func (r *HNCommentRepository) childrenOf(ctx context.Context, parentID int) ([]models.Comment, error) {
	parent, err := r.source.Item(ctx, parentID)
	if err != nil {
		log.Printf("[Repo] 获取 %d 的子评论失败: %v", parentID, err)
		return []models.Comment{}, nil
	}
	if parent == nil || len(parent.Kids) == 0 {
		return []models.Comment{}, nil
	}
	return r.CommentsByIDs(ctx, parent.Kids)
}
