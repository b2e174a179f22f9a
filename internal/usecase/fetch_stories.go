package usecase

import (
	"context"

	"hnreader/internal/models"
)

type FetchTopStoriesInput struct {
	Limit int
}

type FetchTopStoriesOutput struct {
	Stories []models.Story
}

type FetchTopStories struct {
	repo StoryRepository
}

func NewFetchTopStories(repo StoryRepository) *FetchTopStories {
	return &FetchTopStories{repo: repo}
}

// Execute limit 缺省为 30；仓储已经过滤，这里原样返回
func (u *FetchTopStories) Execute(ctx context.Context, in FetchTopStoriesInput) (FetchTopStoriesOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	stories, err := u.repo.TopStories(ctx, limit)
	if err != nil {
		return FetchTopStoriesOutput{Stories: []models.Story{}}, err
	}
	return FetchTopStoriesOutput{Stories: cloneStories(stories)}, nil
}

type FetchCategoryStoriesInput struct {
	Category string
	Limit    int
}

// FetchCategoryStories new/ask/show/jobs/best 分类列表
type FetchCategoryStories struct {
	repo StoryRepository
}

func NewFetchCategoryStories(repo StoryRepository) *FetchCategoryStories {
	return &FetchCategoryStories{repo: repo}
}

func (u *FetchCategoryStories) Execute(ctx context.Context, in FetchCategoryStoriesInput) (FetchTopStoriesOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	stories, err := u.repo.StoriesByCategory(ctx, in.Category, limit)
	if err != nil {
		return FetchTopStoriesOutput{Stories: []models.Story{}}, err
	}
	return FetchTopStoriesOutput{Stories: cloneStories(stories)}, nil
}

type FetchStoryDetailsInput struct {
	StoryID int
}

type FetchStoryDetailsOutput struct {
	Story *models.Story
}

type FetchStoryDetails struct {
	repo StoryRepository
}

func NewFetchStoryDetails(repo StoryRepository) *FetchStoryDetails {
	return &FetchStoryDetails{repo: repo}
}

// Execute 找不到时 Story 为 nil，不算错误
func (u *FetchStoryDetails) Execute(ctx context.Context, in FetchStoryDetailsInput) (FetchStoryDetailsOutput, error) {
	story, err := u.repo.StoryByID(ctx, in.StoryID)
	if err != nil {
		return FetchStoryDetailsOutput{}, err
	}
	if story == nil {
		return FetchStoryDetailsOutput{Story: nil}, nil
	}
	fresh := story.Clone()
	return FetchStoryDetailsOutput{Story: &fresh}, nil
}
