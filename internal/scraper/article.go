package scraper

import (
	"time"

	"github.com/LJTian/NewsHub/internal/source"
)

// Article 是提取完成后的统一文章结构。
// 每轮刷新都会整体重建，不做单条更新或删除。
type Article struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
	// 源页面很少暴露可靠的发布时间，统一取提取时刻
	PublishedAt time.Time       `json:"publishedAt"`
	Source      string          `json:"source"`
	Category    source.Category `json:"category"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}
