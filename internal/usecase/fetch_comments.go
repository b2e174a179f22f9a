package usecase

import (
	"context"

	"hnreader/internal/models"
)

type FetchCommentsInput struct {
	CommentIDs []int
}

type FetchCommentsOutput struct {
	Comments []models.Comment
}

type FetchComments struct {
	repo CommentRepository
}

func NewFetchComments(repo CommentRepository) *FetchComments {
	return &FetchComments{repo: repo}
}

// Execute 空 id 列表直接返回，不访问仓储
func (u *FetchComments) Execute(ctx context.Context, in FetchCommentsInput) (FetchCommentsOutput, error) {
	if len(in.CommentIDs) == 0 {
		return FetchCommentsOutput{Comments: []models.Comment{}}, nil
	}
	comments, err := u.repo.CommentsByIDs(ctx, in.CommentIDs)
	if err != nil {
		return FetchCommentsOutput{Comments: []models.Comment{}}, err
	}
	out := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.Clone())
	}
	return FetchCommentsOutput{Comments: out}, nil
}
