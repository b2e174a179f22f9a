package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hnreader/internal/services"
	"hnreader/internal/utils"
)

const msgNoComments = "No comments yet."

var categoryTitles = map[string]string{
	"new":  "New",
	"ask":  "Ask",
	"show": "Show",
	"jobs": "Jobs",
	"best": "Best",
}

type StoryHandler struct {
	loader Loader
	limit  int
}

func NewStoryHandler(loader Loader, limit int) *StoryHandler {
	return &StoryHandler{loader: loader, limit: limit}
}

func (h *StoryHandler) ListTop(c *gin.Context) {
	if wantsRefresh(c) {
		h.loader.Mutate(services.TopStoriesKey(h.limit))
	}

	stories, err := h.loader.TopStories(c.Request.Context(), h.limit)
	if err != nil {
		renderLoadError(c, "ListTop", err)
		return
	}

	Render(c, http.StatusOK, "story/list.html", gin.H{
		"Title":    "Top Stories",
		"Category": "top",
		"Stories":  stories,
	})
}

// ListCategory 返回固定分类的列表页
func (h *StoryHandler) ListCategory(category string) gin.HandlerFunc {
	title := categoryTitles[category]
	if title == "" {
		title = strings.ToUpper(category[:1]) + category[1:]
	}
	return func(c *gin.Context) {
		if wantsRefresh(c) {
			h.loader.Mutate(services.CategoryStoriesKey(category, h.limit))
		}

		stories, err := h.loader.CategoryStories(c.Request.Context(), category, h.limit)
		if err != nil {
			renderLoadError(c, "ListCategory", err)
			return
		}

		Render(c, http.StatusOK, "story/list.html", gin.H{
			"Title":    title,
			"Category": category,
			"Stories":  stories,
		})
	}
}

func (h *StoryHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseItemID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "Story not found")
		return
	}
	if wantsRefresh(c) {
		h.loader.Mutate(services.StoryDetailsKey(id))
		h.loader.Mutate(services.StoryCommentsKey(id))
	}

	ctx := c.Request.Context()
	story, err := h.loader.StoryDetails(ctx, id)
	if err != nil {
		renderLoadError(c, "Detail", err)
		return
	}

	data := gin.H{
		"Title": story.Title,
		"Story": story,
	}
	comments, err := h.loader.CommentsForStory(ctx, id)
	switch {
	case err != nil:
		data["CommentsError"] = err.Error()
	case len(comments) == 0:
		data["NoComments"] = msgNoComments
	}
	data["Comments"] = comments

	Render(c, http.StatusOK, "story/detail.html", data)
}

// CommentThread 单条评论及其回复，占位评论的链接指向这里
func (h *StoryHandler) CommentThread(c *gin.Context) {
	id, ok := utils.ParseItemID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "Comment not found")
		return
	}
	if wantsRefresh(c) {
		h.loader.Mutate(services.RepliesKey(id))
	}

	thread, err := h.loader.Thread(c.Request.Context(), id)
	if err != nil {
		renderLoadError(c, "CommentThread", err)
		return
	}

	data := gin.H{
		"Title":   "Comment by " + thread.Root.Author,
		"Thread":  thread,
		"Root":    thread.Root,
		"Replies": thread.Replies,
	}
	if len(thread.Replies) == 0 {
		data["NoComments"] = msgNoComments
	}
	Render(c, http.StatusOK, "comment/thread.html", data)
}
