package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hnreader/internal/services"
)

type UserHandler struct {
	loader Loader
}

func NewUserHandler(loader Loader) *UserHandler {
	return &UserHandler{loader: loader}
}

// Profile 用户主页
func (h *UserHandler) Profile(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}
	if wantsRefresh(c) {
		h.loader.Mutate(services.UserKey(id))
	}

	user, err := h.loader.User(c.Request.Context(), id)
	if err != nil {
		renderLoadError(c, "Profile", err)
		return
	}

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title": user.ID,
		"User":  user,
	})
}
