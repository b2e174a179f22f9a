package router

import (
	"fmt"
	"html/template"
	"io/fs"

	"github.com/gin-contrib/multitemplate"

	"hnreader/internal/utils"
)

// 页面名 -> views 下的文件
var views = map[string]string{
	"story/list.html":     "views/story/list.html",
	"story/detail.html":   "views/story/detail.html",
	"comment/thread.html": "views/comment/thread.html",
	"user/profile.html":   "views/user/profile.html",
	"submit.html":         "views/submit.html",
	"error.html":          "views/error.html",
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		// 每层缩进 40px
		"indent": func(level int) int {
			if level < 0 {
				return 0
			}
			return level * 40
		},
		"hnText": utils.HNText,
		"host":   utils.Host,
	}
}

// LoadTemplates 每个页面 = 布局 + 组件 + 视图
func LoadTemplates(fsys fs.FS) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()
	funcs := funcMap()

	components, err := fs.Glob(fsys, "components/*.html")
	if err != nil {
		return nil, err
	}

	for name, view := range views {
		files := append([]string{"layouts/base.html"}, components...)
		files = append(files, view)
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.Add(name, tmpl)
	}
	return r, nil
}
