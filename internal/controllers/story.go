package controllers

import (
	"context"
	"fmt"

	"hnreader/internal/models"
	"hnreader/internal/usecase"
)

const (
	MsgTopStoriesFailed   = "Failed to fetch top stories"
	MsgStoryDetailsFailed = "Failed to fetch story details"
)

type TopStoriesExecutor interface {
	Execute(ctx context.Context, in usecase.FetchTopStoriesInput) (usecase.FetchTopStoriesOutput, error)
}

type CategoryStoriesExecutor interface {
	Execute(ctx context.Context, in usecase.FetchCategoryStoriesInput) (usecase.FetchTopStoriesOutput, error)
}

type StoryDetailsExecutor interface {
	Execute(ctx context.Context, in usecase.FetchStoryDetailsInput) (usecase.FetchStoryDetailsOutput, error)
}

type StoryController struct {
	top      TopStoriesExecutor
	category CategoryStoriesExecutor
	details  StoryDetailsExecutor
}

func NewStoryController(top TopStoriesExecutor, category CategoryStoriesExecutor, details StoryDetailsExecutor) *StoryController {
	return &StoryController{top: top, category: category, details: details}
}

// NewStoryControllerFromRepository 用同一个仓储构造全部用例
func NewStoryControllerFromRepository(repo usecase.StoryRepository) *StoryController {
	return NewStoryController(
		usecase.NewFetchTopStories(repo),
		usecase.NewFetchCategoryStories(repo),
		usecase.NewFetchStoryDetails(repo),
	)
}

func (c *StoryController) GetTopStories(ctx context.Context, limit int) (res Result[[]models.Story]) {
	defer recoverInto(&res, "StoryController.GetTopStories", MsgTopStoriesFailed, []models.Story{})

	out, err := c.top.Execute(ctx, usecase.FetchTopStoriesInput{Limit: limit})
	if err != nil {
		logFailure("StoryController.GetTopStories", err)
		return Failure(MsgTopStoriesFailed, []models.Story{})
	}
	return Success(out.Stories)
}

func (c *StoryController) GetStoriesByCategory(ctx context.Context, category string, limit int) (res Result[[]models.Story]) {
	message := fmt.Sprintf("Failed to fetch %s stories", category)
	defer recoverInto(&res, "StoryController.GetStoriesByCategory", message, []models.Story{})

	out, err := c.category.Execute(ctx, usecase.FetchCategoryStoriesInput{Category: category, Limit: limit})
	if err != nil {
		logFailure("StoryController.GetStoriesByCategory", err)
		return Failure(message, []models.Story{})
	}
	return Success(out.Stories)
}

// GetStoryDetails 找不到时 Success 为 true 且 Data 为 nil
func (c *StoryController) GetStoryDetails(ctx context.Context, storyID int) (res Result[*models.Story]) {
	defer recoverInto(&res, "StoryController.GetStoryDetails", MsgStoryDetailsFailed, nil)

	out, err := c.details.Execute(ctx, usecase.FetchStoryDetailsInput{StoryID: storyID})
	if err != nil {
		logFailure("StoryController.GetStoryDetails", err)
		return Failure[*models.Story](MsgStoryDetailsFailed, nil)
	}
	return Success(out.Story)
}
