package models

import (
	"fmt"
	"time"
)

// FormatTimeAgo 把秒差格式化为相对时间，向下取整。
// < 1 小时按分钟，< 1 天按小时，其余按天。未来时间按 0 处理。
func FormatTimeAgo(diffSeconds int64) string {
	if diffSeconds < 0 {
		diffSeconds = 0
	}
	switch {
	case diffSeconds >= 86400:
		return fmt.Sprintf("%d days ago", diffSeconds/86400)
	case diffSeconds >= 3600:
		return fmt.Sprintf("%d hours ago", diffSeconds/3600)
	default:
		return fmt.Sprintf("%d minutes ago", diffSeconds/60)
	}
}

// TimeAgoAt 计算 epoch 秒 ts 相对 now 的时间标签
func TimeAgoAt(ts int64, now time.Time) string {
	return FormatTimeAgo(now.Unix() - ts)
}
