package models

import (
	"strings"
	"time"
)

const anonymousAuthor = "anonymous"

// Comment 领域实体
type Comment struct {
	ID      int     `json:"id"`
	Time    int64   `json:"time"`
	By      *string `json:"by,omitempty"`
	Text    *string `json:"text,omitempty"`
	Kids    []int   `json:"kids,omitempty"`
	Parent  *int    `json:"parent,omitempty"`
	Deleted bool    `json:"deleted,omitempty"`
	Dead    bool    `json:"dead,omitempty"`
}

func NewCommentFromItem(item *Item) Comment {
	return Comment{
		ID:      item.ID,
		Time:    item.Time,
		By:      nonEmpty(item.By),
		Text:    item.Text,
		Kids:    cloneInts(item.Kids),
		Parent:  item.Parent,
		Deleted: item.Deleted,
		Dead:    item.Dead,
	}
}

func (c Comment) Clone() Comment {
	c.Kids = cloneInts(c.Kids)
	return c
}

func (c Comment) TimeAgo() string {
	return c.TimeAgoAt(time.Now())
}

func (c Comment) TimeAgoAt(now time.Time) string {
	return TimeAgoAt(c.Time, now)
}

// HasContent 未删除、未 dead 且正文非空白
func (c Comment) HasContent() bool {
	return !c.Deleted && !c.Dead && c.Text != nil && strings.TrimSpace(*c.Text) != ""
}

// HasAuthor 作者缺失时为 false，Author 会回退为 anonymous
func (c Comment) HasAuthor() bool {
	return c.By != nil
}

func (c Comment) Author() string {
	if c.By == nil {
		return anonymousAuthor
	}
	return *c.By
}

func (c Comment) BodyText() string {
	return deref(c.Text)
}

func (c Comment) ReplyCount() int {
	return len(c.Kids)
}

func (c Comment) HasReplies() bool {
	return c.ReplyCount() > 0
}

func (c Comment) ParentID() int {
	return deref(c.Parent)
}
