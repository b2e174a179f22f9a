package models

// Item 是 HN API 返回的原始记录，story、comment、job、poll 共用一个结构，靠 Type 区分。
// 可选标量使用指针，缺失与零值可以区分开。
type Item struct {
	ID          int     `json:"id"`
	Type        string  `json:"type,omitempty"`
	By          *string `json:"by,omitempty"`
	Time        int64   `json:"time,omitempty"`
	Title       *string `json:"title,omitempty"`
	URL         *string `json:"url,omitempty"`
	Text        *string `json:"text,omitempty"`
	Score       *int    `json:"score,omitempty"`
	Descendants *int    `json:"descendants,omitempty"`
	Parent      *int    `json:"parent,omitempty"`
	Kids        []int   `json:"kids,omitempty"`
	Deleted     bool    `json:"deleted,omitempty"`
	Dead        bool    `json:"dead,omitempty"`
}

// Kind tags
const (
	KindStory   = "story"
	KindComment = "comment"
)

// UserRecord 是 /user/<id>.json 的原始记录
type UserRecord struct {
	ID        string  `json:"id"`
	Created   int64   `json:"created"`
	Karma     int     `json:"karma"`
	Delay     *int    `json:"delay,omitempty"`
	About     *string `json:"about,omitempty"`
	Submitted []int   `json:"submitted,omitempty"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// nonEmpty 把空字符串当作缺失
func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}

func cloneInts(src []int) []int {
	if src == nil {
		return nil
	}
	dst := make([]int, len(src))
	copy(dst, src)
	return dst
}
