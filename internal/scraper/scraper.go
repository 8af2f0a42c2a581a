package scraper

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/LJTian/NewsHub/internal/source"
)

// Scraper 对一组新闻源做抓取-提取-去重的完整流水线
type Scraper struct {
	timeout time.Duration
}

func New(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Scraper{timeout: timeout}
}

// ScrapeSource 抓取单个源并提取文章。
// 抓取失败返回空列表与 error，只记日志，绝不向上冒泡中断整轮聚合。
func (s *Scraper) ScrapeSource(src source.Source) ([]Article, error) {
	body, err := FetchPage(src.URL, s.timeout)
	if err != nil {
		log.Printf("scrape %s error: %v", src.Name, err)
		return nil, err
	}

	articles := Extract(body, src)
	log.Printf("successfully scraped %d articles from %s", len(articles), src.Name)
	return articles, nil
}

// Aggregate 并发抓取全部给定源，按 registry 顺序拼接后做标题去重。
// 单个源失败只损失该源的结果；仅当所有源都失败时返回 error，
// 让缓存层保留上一轮数据继续对外服务。
func (s *Scraper) Aggregate(sources []source.Source) ([]Article, error) {
	results := make([][]Article, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i := range sources {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.ScrapeSource(sources[i])
		}(i)
	}
	wg.Wait()

	failed := 0
	merged := make([]Article, 0, len(sources)*maxCandidatesPerSource)
	for i := range sources {
		if errs[i] != nil {
			failed++
			continue
		}
		merged = append(merged, results[i]...)
	}

	if len(sources) > 0 && failed == len(sources) {
		return nil, fmt.Errorf("aggregate: all %d sources failed", len(sources))
	}
	if failed > 0 {
		log.Printf("aggregate: %d/%d sources failed, keeping partial result", failed, len(sources))
	}

	return Deduplicate(merged), nil
}

// Deduplicate 按归一化标题去重，保留首次出现的那条（registry 顺序优先）
func Deduplicate(articles []Article) []Article {
	seen := make(map[string]struct{}, len(articles))
	out := make([]Article, 0, len(articles))

	for _, a := range articles {
		key := normalizeTitle(a.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}

	return out
}
