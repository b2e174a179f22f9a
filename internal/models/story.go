package models

import (
	"fmt"
	"time"
)

// Story 领域实体，构造后不再修改
type Story struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Score       int     `json:"score"`
	By          string  `json:"by"`
	Time        int64   `json:"time"`
	URL         *string `json:"url,omitempty"`
	Descendants *int    `json:"descendants,omitempty"`
	Text        *string `json:"text,omitempty"`
	Kids        []int   `json:"kids,omitempty"`
}

// NewStoryFromItem 从原始记录构造 Story，默认值在这里统一处理
func NewStoryFromItem(item *Item) Story {
	return Story{
		ID:          item.ID,
		Title:       deref(item.Title),
		Score:       deref(item.Score),
		By:          deref(item.By),
		Time:        item.Time,
		URL:         nonEmpty(item.URL),
		Descendants: item.Descendants,
		Text:        nonEmpty(item.Text),
		Kids:        cloneInts(item.Kids),
	}
}

// Clone 返回一个新的实体副本
func (s Story) Clone() Story {
	s.Kids = cloneInts(s.Kids)
	return s
}

func (s Story) TimeAgo() string {
	return s.TimeAgoAt(time.Now())
}

func (s Story) TimeAgoAt(now time.Time) string {
	return TimeAgoAt(s.Time, now)
}

func (s Story) HasExternalURL() bool {
	return s.URL != nil
}

// DisplayURL 外链优先，否则指向站内详情页
func (s Story) DisplayURL() string {
	if s.URL != nil {
		return *s.URL
	}
	return fmt.Sprintf("/item/%d", s.ID)
}

// CommentCount descendants 缺失时为 0
func (s Story) CommentCount() int {
	return deref(s.Descendants)
}

func (s Story) HasComments() bool {
	return s.CommentCount() > 0
}

func (s Story) BodyText() string {
	return deref(s.Text)
}

// ChildIDs 直接子评论 id，缺失时为空切片
func (s Story) ChildIDs() []int {
	if s.Kids == nil {
		return []int{}
	}
	return s.Kids
}
