// Package web 打包模板和静态资源，二进制无需附带 web 目录
package web

import "embed"

//go:embed templates
var Templates embed.FS

//go:embed static
var Static embed.FS
