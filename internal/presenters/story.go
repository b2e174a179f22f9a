// Package presenters 把领域实体映射为只用于展示的视图模型，不做任何 I/O。
package presenters

import (
	"time"

	"hnreader/internal/models"
)

type StoryViewModel struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	URL            string `json:"url,omitempty"`
	Score          int    `json:"score"`
	Author         string `json:"author"`
	TimeAgo        string `json:"timeAgo"`
	CommentCount   int    `json:"commentCount"`
	HasExternalURL bool   `json:"hasExternalUrl"`
	DisplayURL     string `json:"displayUrl"`
	Text           string `json:"text,omitempty"`
	CommentIDs     []int  `json:"-"`
}

type StoryPresenter struct {
	now func() time.Time
}

func NewStoryPresenter() *StoryPresenter {
	return &StoryPresenter{now: time.Now}
}

// WithClock 固定时钟，方便测试
func (p *StoryPresenter) WithClock(now func() time.Time) *StoryPresenter {
	return &StoryPresenter{now: now}
}

func (p *StoryPresenter) Present(story models.Story) StoryViewModel {
	vm := StoryViewModel{
		ID:             story.ID,
		Title:          story.Title,
		Score:          story.Score,
		Author:         story.By,
		TimeAgo:        story.TimeAgoAt(p.now()),
		CommentCount:   story.CommentCount(),
		HasExternalURL: story.HasExternalURL(),
		DisplayURL:     story.DisplayURL(),
		Text:           story.BodyText(),
		CommentIDs:     story.ChildIDs(),
	}
	if story.URL != nil {
		vm.URL = *story.URL
	}
	return vm
}

func (p *StoryPresenter) PresentMultiple(stories []models.Story) []StoryViewModel {
	out := make([]StoryViewModel, 0, len(stories))
	for _, s := range stories {
		out = append(out, p.Present(s))
	}
	return out
}
