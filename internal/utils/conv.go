package utils

import (
	"strconv"
	"strings"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}

// ParseItemID 只接受正整数
func ParseItemID(s string) (int, bool) {
	id := StringToInt(s)
	if id <= 0 {
		return 0, false
	}
	return id, true
}

// ClampLimit 解析 limit 参数，非法时用 def，超过 max 时截断
func ClampLimit(s string, def, max int) int {
	n := StringToInt(s)
	if n <= 0 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
