package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"hnreader/internal/hnapi"
	"hnreader/internal/models"
)

// 分类名到列表接口
var categoryLists = map[string]string{
	"new":  hnapi.ListNew,
	"ask":  hnapi.ListAsk,
	"show": hnapi.ListShow,
	"jobs": hnapi.ListJob,
	"best": hnapi.ListBest,
}

// Categories 返回支持的分类名
func Categories() []string {
	return []string{"new", "ask", "show", "jobs", "best"}
}

type HNStoryRepository struct {
	source ItemSource
}

func NewHNStoryRepository(source ItemSource) *HNStoryRepository {
	return &HNStoryRepository{source: source}
}

// isStory 丢弃缺失、已删除、dead 以及非 story 的记录
func isStory(item *models.Item) bool {
	return item != nil && !item.Deleted && !item.Dead && item.Type == models.KindStory
}

func toStories(items []*models.Item) []models.Story {
	stories := make([]models.Story, 0, len(items))
	for _, item := range items {
		if isStory(item) {
			stories = append(stories, models.NewStoryFromItem(item))
		}
	}
	return stories
}

// listStories 先截断 id 列表再批量拉取正文
func (r *HNStoryRepository) listStories(ctx context.Context, list string, limit int) ([]models.Story, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ids, err := r.source.StoryIDs(ctx, list)
	if err != nil {
		return nil, err
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	items, err := r.source.Items(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toStories(items), nil
}

// TopStories 列表失败会向上抛出，便于页面区分“空”和“坏了”
func (r *HNStoryRepository) TopStories(ctx context.Context, limit int) ([]models.Story, error) {
	stories, err := r.listStories(ctx, hnapi.ListTop, limit)
	if err != nil {
		log.Printf("[Repo] 获取热门列表失败: %v", err)
		return nil, fmt.Errorf("failed to fetch top stories: %w", err)
	}
	return stories, nil
}

func (r *HNStoryRepository) StoriesByCategory(ctx context.Context, category string, limit int) ([]models.Story, error) {
	list, ok := categoryLists[strings.ToLower(category)]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownCategory, category)
		log.Printf("[Repo] 获取 %s 列表失败: %v", category, err)
		return nil, fmt.Errorf("failed to fetch %s stories: %w", category, err)
	}
	stories, err := r.listStories(ctx, list, limit)
	if err != nil {
		log.Printf("[Repo] 获取 %s 列表失败: %v", category, err)
		return nil, fmt.Errorf("failed to fetch %s stories: %w", category, err)
	}
	return stories, nil
}

// StoryByID 找不到或校验不通过返回 nil，错误只记录不返回
func (r *HNStoryRepository) StoryByID(ctx context.Context, id int) (*models.Story, error) {
	item, err := r.source.Item(ctx, id)
	if err != nil {
		log.Printf("[Repo] 获取 story %d 失败: %v", id, err)
		return nil, nil
	}
	if !isStory(item) {
		return nil, nil
	}
	story := models.NewStoryFromItem(item)
	return &story, nil
}

func (r *HNStoryRepository) StoriesByIDs(ctx context.Context, ids []int) ([]models.Story, error) {
	if len(ids) == 0 {
		return []models.Story{}, nil
	}
	items, err := r.source.Items(ctx, ids)
	if err != nil {
		log.Printf("[Repo] 批量获取 story 失败: %v", err)
		return []models.Story{}, nil
	}
	return toStories(items), nil
}
