package controllers

import (
	"context"

	"hnreader/internal/models"
	"hnreader/internal/usecase"
)

const (
	MsgStoryNotFound        = "Story not found"
	MsgStoryCommentsFailed  = "Failed to fetch story comments"
	MsgCommentsFailed       = "Failed to fetch comments"
	MsgCommentFailed        = "Failed to fetch comment"
	MsgCommentRepliesFailed = "Failed to fetch replies"
)

type CommentsExecutor interface {
	Execute(ctx context.Context, in usecase.FetchCommentsInput) (usecase.FetchCommentsOutput, error)
}

// StoryLookup 由 *StoryController 实现，注入进来避免两个控制器互相依赖
type StoryLookup interface {
	GetStoryDetails(ctx context.Context, storyID int) Result[*models.Story]
}

// ThreadSource 评论楼层展开
type ThreadSource interface {
	CommentByID(ctx context.Context, id int) (*models.Comment, error)
	CommentReplies(ctx context.Context, commentID int) ([]models.Comment, error)
}

type CommentController struct {
	fetch   CommentsExecutor
	thread  ThreadSource
	stories StoryLookup
}

func NewCommentController(fetch CommentsExecutor, thread ThreadSource, stories StoryLookup) *CommentController {
	return &CommentController{fetch: fetch, thread: thread, stories: stories}
}

func (c *CommentController) GetComments(ctx context.Context, commentIDs []int) (res Result[[]models.Comment]) {
	defer recoverInto(&res, "CommentController.GetComments", MsgStoryCommentsFailed, []models.Comment{})

	out, err := c.fetch.Execute(ctx, usecase.FetchCommentsInput{CommentIDs: commentIDs})
	if err != nil {
		logFailure("CommentController.GetComments", err)
		return Failure(MsgStoryCommentsFailed, []models.Comment{})
	}
	return Success(out.Comments)
}

// GetCommentsForStory 先解析 story，再按它的 kids 拉取评论。
// story 查询失败时原样转发其错误信息，查不到时返回 "Story not found"，两种情况都不会调用评论用例。
func (c *CommentController) GetCommentsForStory(ctx context.Context, storyID int) (res Result[[]models.Comment]) {
	defer recoverInto(&res, "CommentController.GetCommentsForStory", MsgCommentsFailed, []models.Comment{})

	story := c.stories.GetStoryDetails(ctx, storyID)
	if !story.Success {
		message := story.Error
		if message == "" {
			message = MsgStoryNotFound
		}
		return Failure(message, []models.Comment{})
	}
	if story.Data == nil {
		return Failure(MsgStoryNotFound, []models.Comment{})
	}
	return c.GetComments(ctx, story.Data.ChildIDs())
}

func (c *CommentController) GetComment(ctx context.Context, commentID int) (res Result[*models.Comment]) {
	defer recoverInto(&res, "CommentController.GetComment", MsgCommentFailed, nil)

	comment, err := c.thread.CommentByID(ctx, commentID)
	if err != nil {
		logFailure("CommentController.GetComment", err)
		return Failure[*models.Comment](MsgCommentFailed, nil)
	}
	return Success(comment)
}

func (c *CommentController) GetReplies(ctx context.Context, commentID int) (res Result[[]models.Comment]) {
	defer recoverInto(&res, "CommentController.GetReplies", MsgCommentRepliesFailed, []models.Comment{})

	replies, err := c.thread.CommentReplies(ctx, commentID)
	if err != nil {
		logFailure("CommentController.GetReplies", err)
		return Failure(MsgCommentRepliesFailed, []models.Comment{})
	}
	if replies == nil {
		replies = []models.Comment{}
	}
	return Success(replies)
}
