package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hnreader/internal/controllers"
	"hnreader/internal/models"
	"hnreader/internal/repository"
	"hnreader/internal/services"
	"hnreader/internal/utils"
)

const (
	maxAPILimit        = 100
	msgInvalidItemID   = "Invalid item id"
	msgUnknownCategory = "Unknown category"
)

// APIHandler 直接返回控制器的 {success, data, error} 信封
type APIHandler struct {
	stories  services.StoryAPI
	comments services.CommentAPI
	limit    int
}

func NewAPIHandler(stories services.StoryAPI, comments services.CommentAPI, limit int) *APIHandler {
	return &APIHandler{stories: stories, comments: comments, limit: limit}
}

func respond[T any](c *gin.Context, res controllers.Result[T]) {
	code := http.StatusOK
	if !res.Success {
		code = http.StatusBadGateway
		if res.Error == controllers.MsgStoryNotFound {
			code = http.StatusNotFound
		}
	}
	c.JSON(code, res)
}

func knownCategory(category string) bool {
	for _, c := range repository.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Stories GET /api/stories?category=&limit=
func (h *APIHandler) Stories(c *gin.Context) {
	limit := utils.ClampLimit(c.Query("limit"), h.limit, maxAPILimit)
	category := strings.ToLower(strings.TrimSpace(c.DefaultQuery("category", "top")))

	if category == "top" || category == "" {
		respond(c, h.stories.GetTopStories(c.Request.Context(), limit))
		return
	}
	if !knownCategory(category) {
		c.JSON(http.StatusBadRequest, controllers.Failure(msgUnknownCategory, []models.Story{}))
		return
	}
	respond(c, h.stories.GetStoriesByCategory(c.Request.Context(), category, limit))
}

// Item GET /api/item/:id
func (h *APIHandler) Item(c *gin.Context) {
	id, ok := utils.ParseItemID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, controllers.Failure[*models.Story](msgInvalidItemID, nil))
		return
	}

	res := h.stories.GetStoryDetails(c.Request.Context(), id)
	if res.Success && res.Data == nil {
		res = controllers.Failure[*models.Story](controllers.MsgStoryNotFound, nil)
	}
	respond(c, res)
}

// Comments GET /api/item/:id/comments
func (h *APIHandler) Comments(c *gin.Context) {
	id, ok := utils.ParseItemID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, controllers.Failure(msgInvalidItemID, []models.Comment{}))
		return
	}
	respond(c, h.comments.GetCommentsForStory(c.Request.Context(), id))
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
