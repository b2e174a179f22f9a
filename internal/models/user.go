package models

import (
	"strings"
	"time"
)

// User 领域实体，ID 即用户名
type User struct {
	ID        string  `json:"id"`
	Created   int64   `json:"created"`
	Karma     int     `json:"karma"`
	Delay     *int    `json:"delay,omitempty"`
	About     *string `json:"about,omitempty"`
	Submitted []int   `json:"submitted,omitempty"`
}

func NewUserFromRecord(rec *UserRecord) User {
	return User{
		ID:        rec.ID,
		Created:   rec.Created,
		Karma:     rec.Karma,
		Delay:     rec.Delay,
		About:     rec.About,
		Submitted: cloneInts(rec.Submitted),
	}
}

// AccountAge 注册天数，向下取整，未来时间按 0 天
func (u User) AccountAge() int {
	return u.AccountAgeAt(time.Now())
}

func (u User) AccountAgeAt(now time.Time) int {
	days := (now.Unix() - u.Created) / 86400
	if days < 0 {
		return 0
	}
	return int(days)
}

func (u User) CreatedDate() string {
	return time.Unix(u.Created, 0).UTC().Format("2006-01-02")
}

func (u User) HasAbout() bool {
	return u.About != nil && strings.TrimSpace(*u.About) != ""
}

func (u User) AboutText() string {
	return deref(u.About)
}

func (u User) SubmissionCount() int {
	return len(u.Submitted)
}

func (u User) HasSubmissions() bool {
	return u.SubmissionCount() > 0
}
