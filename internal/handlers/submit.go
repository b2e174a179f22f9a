package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"hnreader/internal/middleware"
	"hnreader/internal/utils"
)

const (
	SubmitFlash    = "Story submitted! (This is a demo, not actually submitted to Hacker News)"
	maxTitleLength = 80
)

// SubmitHandler 本地演示表单，不写入任何地方也不发往上游
type SubmitHandler struct{}

func NewSubmitHandler() *SubmitHandler {
	return &SubmitHandler{}
}

type submitForm struct {
	Title string
	URL   string
	Text  string
}

func (f submitForm) validate() []string {
	var errs []string
	if f.Title == "" {
		errs = append(errs, "Title is required")
	} else if len([]rune(f.Title)) > maxTitleLength {
		errs = append(errs, "Title must be at most 80 characters")
	}
	if f.URL != "" {
		u, err := url.Parse(f.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, "URL must start with http:// or https://")
		}
	}
	return errs
}

func (h *SubmitHandler) ShowSubmit(c *gin.Context) {
	Render(c, http.StatusOK, "submit.html", gin.H{
		"Title": "Submit",
		"Form":  submitForm{},
	})
}

func (h *SubmitHandler) Submit(c *gin.Context) {
	form := submitForm{
		Title: strings.TrimSpace(c.PostForm("title")),
		URL:   strings.TrimSpace(c.PostForm("url")),
		Text:  strings.TrimSpace(c.PostForm("text")),
	}

	if c.PostForm("action") == "preview" {
		Render(c, http.StatusOK, "submit.html", gin.H{
			"Title":   "Submit",
			"Form":    form,
			"Preview": utils.RenderMarkdown(form.Text),
		})
		return
	}

	if errs := form.validate(); len(errs) > 0 {
		Render(c, http.StatusBadRequest, "submit.html", gin.H{
			"Title":   "Submit",
			"Form":    form,
			"Errors":  errs,
			"Preview": utils.RenderMarkdown(form.Text),
		})
		return
	}

	log.Printf("[Submit] demo submission request=%s title=%q url=%q", middleware.GetRequestID(c), form.Title, form.URL)

	session := sessions.Default(c)
	session.AddFlash(SubmitFlash)
	if err := session.Save(); err != nil {
		log.Printf("[Submit] save session: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/submit")
}
