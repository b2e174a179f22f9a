package presenters

import (
	"testing"
	"time"

	"hnreader/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func clock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestStoryPresentWithoutURL(t *testing.T) {
	p := NewStoryPresenter().WithClock(clock)
	vm := p.Present(models.Story{ID: 12, Title: "Ask HN", By: "pg", Score: 3, Time: fixedNow.Unix() - 120})

	assert.False(t, vm.HasExternalURL)
	assert.Equal(t, "/item/12", vm.DisplayURL)
	assert.Equal(t, "pg", vm.Author)
	assert.Equal(t, "2 minutes ago", vm.TimeAgo)
	assert.Equal(t, 0, vm.CommentCount)
}

func TestStoryPresentWithURL(t *testing.T) {
	p := NewStoryPresenter().WithClock(clock)
	vm := p.Present(models.Story{ID: 1, URL: strPtr("https://go.dev"), Descendants: intPtr(8), Time: fixedNow.Unix() - 86400})

	assert.True(t, vm.HasExternalURL)
	assert.Equal(t, "https://go.dev", vm.DisplayURL)
	assert.Equal(t, "https://go.dev", vm.URL)
	assert.Equal(t, 8, vm.CommentCount)
	assert.Equal(t, "1 days ago", vm.TimeAgo)
}

func TestStoryPresentMultipleKeepsOrder(t *testing.T) {
	p := NewStoryPresenter().WithClock(clock)
	vms := p.PresentMultiple([]models.Story{{ID: 1}, {ID: 2}})
	require.Len(t, vms, 2)
	assert.Equal(t, 1, vms[0].ID)
	assert.Equal(t, 2, vms[1].ID)
	assert.NotNil(t, p.PresentMultiple(nil))
}

func TestCommentPresent(t *testing.T) {
	p := NewCommentPresenter().WithClock(clock)
	vm := p.Present(models.Comment{ID: 1, Text: strPtr("hello"), Kids: []int{2, 3}, Time: fixedNow.Unix() - 3600}, 0)

	assert.True(t, vm.HasContent)
	assert.Equal(t, 2, vm.ReplyCount)
	assert.True(t, vm.HasReplies)
	assert.Equal(t, 0, vm.Level)
	assert.Equal(t, "anonymous", vm.Author)
	assert.False(t, vm.HasAuthor)
	assert.Equal(t, "1 hours ago", vm.TimeAgo)

	vm = p.Present(models.Comment{ID: 4, By: strPtr("pg"), Text: strPtr("hi")}, 0)
	assert.True(t, vm.HasAuthor)
	assert.Equal(t, "pg", vm.Author)

	vm = p.Present(models.Comment{ID: 2, Deleted: true, Text: strPtr("x")}, 3)
	assert.False(t, vm.HasContent)
	assert.Equal(t, 3, vm.Level)
}

func TestCommentPresentWithReplies(t *testing.T) {
	p := NewCommentPresenter().WithClock(clock)
	vms := p.PresentWithReplies([]models.Comment{
		{ID: 1, By: strPtr("a"), Text: strPtr("root"), Kids: []int{10, 11}},
		{ID: 2, By: strPtr("b"), Text: strPtr("leaf")},
	}, 1)

	require.Len(t, vms, 4)
	assert.Equal(t, 1, vms[0].ID)
	assert.Equal(t, 1, vms[0].Level)
	for _, vm := range vms[1:3] {
		assert.Equal(t, PlaceholderAuthor, vm.Author)
		assert.Equal(t, PlaceholderText, vm.Text)
		assert.Equal(t, 2, vm.Level)
		assert.True(t, vm.HasContent)
		assert.False(t, vm.HasReplies)
		assert.True(t, vm.Placeholder)
	}
	assert.Equal(t, 10, vms[1].ID)
	assert.Equal(t, 11, vms[2].ID)
	assert.Equal(t, 2, vms[3].ID)
}

func TestUserPresent(t *testing.T) {
	p := NewUserPresenter().WithClock(clock)
	vm := p.Present(models.User{ID: "pg", Karma: 10, Created: fixedNow.Unix() - 5*86400, About: strPtr("hi"), Submitted: []int{1, 2}})

	assert.Equal(t, 5, vm.AccountAgeDays)
	assert.True(t, vm.HasAbout)
	assert.Equal(t, 2, vm.SubmissionCount)
}
