package presenters

import (
	"time"

	"hnreader/internal/models"
)

// 回复占位，等待真正加载
const (
	PlaceholderAuthor = "Loading..."
	PlaceholderText   = "Loading reply..."
)

type CommentViewModel struct {
	ID          int    `json:"id"`
	Author      string `json:"author"`
	HasAuthor   bool   `json:"hasAuthor"`
	TimeAgo     string `json:"timeAgo"`
	Text        string `json:"text,omitempty"`
	HasContent  bool   `json:"hasContent"`
	ReplyCount  int    `json:"replyCount"`
	HasReplies  bool   `json:"hasReplies"`
	Level       int    `json:"level"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type CommentPresenter struct {
	now func() time.Time
}

func NewCommentPresenter() *CommentPresenter {
	return &CommentPresenter{now: time.Now}
}

func (p *CommentPresenter) WithClock(now func() time.Time) *CommentPresenter {
	return &CommentPresenter{now: now}
}

// Present level 是楼层嵌套深度，顶层为 0
func (p *CommentPresenter) Present(comment models.Comment, level int) CommentViewModel {
	return CommentViewModel{
		ID:         comment.ID,
		Author:     comment.Author(),
		HasAuthor:  comment.HasAuthor(),
		TimeAgo:    comment.TimeAgoAt(p.now()),
		Text:       comment.BodyText(),
		HasContent: comment.HasContent(),
		ReplyCount: comment.ReplyCount(),
		HasReplies: comment.HasReplies(),
		Level:      level,
	}
}

func (p *CommentPresenter) PresentMultiple(comments []models.Comment, level int) []CommentViewModel {
	out := make([]CommentViewModel, 0, len(comments))
	for _, c := range comments {
		out = append(out, p.Present(c, level))
	}
	return out
}

// PresentWithReplies 每条评论后面跟着它的回复占位（level+1）
func (p *CommentPresenter) PresentWithReplies(comments []models.Comment, level int) []CommentViewModel {
	out := make([]CommentViewModel, 0, len(comments))
	for _, c := range comments {
		out = append(out, p.Present(c, level))
		for _, kid := range c.Kids {
			out = append(out, Placeholder(kid, level+1))
		}
	}
	return out
}

// Placeholder 尚未加载的回复
func Placeholder(id, level int) CommentViewModel {
	return CommentViewModel{
		ID:          id,
		Author:      PlaceholderAuthor,
		Text:        PlaceholderText,
		HasContent:  true,
		Level:       level,
		Placeholder: true,
	}
}
