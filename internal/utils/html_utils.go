package utils

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var hnPolicy = bluemonday.UGCPolicy()

// HNText 清洗 HN 返回的 HTML 片段（评论、Ask HN 正文、用户简介）
func HNText(raw string) template.HTML {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return template.HTML(rewriteLinks(hnPolicy.Sanitize(raw)))
}

// rewriteLinks 站内 item / user 链接改成本地路由，外链新窗口打开
func rewriteLinks(htmlStr string) string {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return htmlStr
	}

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if local, ok := localHNPath(href); ok {
			s.SetAttr("href", local)
			s.RemoveAttr("target")
			s.RemoveAttr("rel")
			return
		}
		s.SetAttr("rel", "nofollow noopener")
		s.SetAttr("target", "_blank")
	})

	html, _ := doc.Find("body").Html()
	if html == "" {
		html, _ = doc.Html()
	}
	return html
}

// localHNPath news.ycombinator.com/item?id=1 -> /item/1
func localHNPath(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "news.ycombinator.com" {
		return "", false
	}
	id := u.Query().Get("id")
	switch u.Path {
	case "/item":
		if _, ok := ParseItemID(id); ok {
			return "/item/" + id, true
		}
	case "/user":
		if id != "" {
			return "/user/" + url.PathEscape(id), true
		}
	}
	return "", false
}

// Host 提取外链域名，去掉 www. 前缀，解析失败返回空
func Host(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
