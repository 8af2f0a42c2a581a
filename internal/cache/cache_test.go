package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/LJTian/NewsHub/internal/scraper"
	"github.com/LJTian/NewsHub/internal/source"
)

// stubAggregator 记录调用次数并返回固定结果，模拟真实抓取流水线
type stubAggregator struct {
	mu       sync.Mutex
	calls    int
	articles []scraper.Article
	err      error
}

func (s *stubAggregator) Aggregate(sources []source.Source) ([]scraper.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]scraper.Article, len(s.articles))
	copy(out, s.articles)
	return out, nil
}

func (s *stubAggregator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func mkArticles(n int) []scraper.Article {
	out := make([]scraper.Article, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, scraper.Article{
			Title:    fmt.Sprintf("Generated Headline Number %02d", i),
			URL:      fmt.Sprintf("https://example.com/%d", i),
			Source:   "Hindustan Times",
			Category: source.CategoryDomestic,
		})
	}
	return out
}

func testStore(agg Aggregator, ttl time.Duration) *Store {
	reg := source.NewRegistry([]source.Source{
		{Name: "Hindustan Times", URL: "https://example.com/", Category: source.CategoryDomestic},
		{Name: "BBC News", URL: "https://example.org/", Category: source.CategoryInternational},
	})
	return New(reg, agg, ttl, nil)
}

func TestGetRefreshesEmptyCellOnce(t *testing.T) {
	agg := &stubAggregator{articles: mkArticles(3)}
	s := testStore(agg, DefaultTTL)

	articles, refreshedAt, err := s.Get(source.CategoryAll, false)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("Get = %d articles, want 3", len(articles))
	}
	if refreshedAt.IsZero() {
		t.Fatal("refreshedAt not set after first refresh")
	}
	if agg.callCount() != 1 {
		t.Fatalf("aggregator called %d times, want 1", agg.callCount())
	}

	// 新鲜期内的第二次读取不应再触发抓取
	if _, _, err := s.Get(source.CategoryAll, false); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if agg.callCount() != 1 {
		t.Fatalf("fresh cell should not refresh, calls = %d", agg.callCount())
	}
}

func TestGetRespectsTTL(t *testing.T) {
	agg := &stubAggregator{articles: mkArticles(2)}
	s := testStore(agg, 30*time.Minute)

	base := time.Now()
	s.now = func() time.Time { return base }

	if _, _, err := s.Get(source.CategoryDomestic, false); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if agg.callCount() != 1 {
		t.Fatalf("calls = %d, want 1", agg.callCount())
	}

	// T+29min 仍然新鲜，原样服务
	s.now = func() time.Time { return base.Add(29 * time.Minute) }
	if _, _, err := s.Get(source.CategoryDomestic, false); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if agg.callCount() != 1 {
		t.Fatalf("T+29min triggered refresh, calls = %d", agg.callCount())
	}

	// T+31min 过期，同步刷新后再响应
	s.now = func() time.Time { return base.Add(31 * time.Minute) }
	_, refreshedAt, err := s.Get(source.CategoryDomestic, false)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if agg.callCount() != 2 {
		t.Fatalf("T+31min should refresh, calls = %d", agg.callCount())
	}
	if !refreshedAt.Equal(base.Add(31 * time.Minute)) {
		t.Fatalf("refreshedAt = %s, want T+31min", refreshedAt)
	}
}

func TestForceRefreshAlwaysTriggers(t *testing.T) {
	agg := &stubAggregator{articles: mkArticles(1)}
	s := testStore(agg, DefaultTTL)

	if _, _, err := s.Get(source.CategoryInternational, false); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if _, _, err := s.Get(source.CategoryInternational, true); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if agg.callCount() != 2 {
		t.Fatalf("force refresh should always trigger, calls = %d", agg.callCount())
	}
}

func TestRefreshFailureKeepsStaleContents(t *testing.T) {
	agg := &stubAggregator{articles: mkArticles(4)}
	s := testStore(agg, 30*time.Minute)

	base := time.Now()
	s.now = func() time.Time { return base }
	if _, _, err := s.Get(source.CategoryAll, false); err != nil {
		t.Fatalf("Get error: %v", err)
	}

	// 之后每轮聚合都失败：旧数据与旧时间戳应原样保留（降级继续服务）
	agg.mu.Lock()
	agg.err = errors.New("all sources failed")
	agg.mu.Unlock()

	s.now = func() time.Time { return base.Add(time.Hour) }
	articles, refreshedAt, err := s.Get(source.CategoryAll, false)
	if err != nil {
		t.Fatalf("Get should not fail when serving stale: %v", err)
	}
	if len(articles) != 4 {
		t.Fatalf("stale contents lost: %d articles", len(articles))
	}
	if !refreshedAt.Equal(base) {
		t.Fatalf("refreshedAt changed on failed refresh: %s", refreshedAt)
	}
}

func TestListArticlesLimitAndOrder(t *testing.T) {
	agg := &stubAggregator{articles: mkArticles(12)}
	s := testStore(agg, DefaultTTL)

	articles, _, err := s.ListArticles(source.CategoryAll, ListOptions{Limit: 5})
	if err != nil {
		t.Fatalf("ListArticles error: %v", err)
	}
	if len(articles) != 5 {
		t.Fatalf("ListArticles = %d, want 5", len(articles))
	}
	// 截断应保留抓取顺序的前五条
	for i, a := range articles {
		want := fmt.Sprintf("Generated Headline Number %02d", i)
		if a.Title != want {
			t.Fatalf("articles[%d].Title = %q, want %q", i, a.Title, want)
		}
	}

	// limit 超出上限时按 100 截断；0 使用默认 20
	articles, _, _ = s.ListArticles(source.CategoryAll, ListOptions{Limit: 500})
	if len(articles) != 12 {
		t.Fatalf("ListArticles limit=500 = %d, want all 12", len(articles))
	}
	articles, _, _ = s.ListArticles(source.CategoryAll, ListOptions{})
	if len(articles) != 12 {
		t.Fatalf("ListArticles default limit = %d, want all 12", len(articles))
	}
}

func TestListArticlesSourceFilter(t *testing.T) {
	arts := mkArticles(3)
	arts[1].Source = "BBC News"
	agg := &stubAggregator{articles: arts}
	s := testStore(agg, DefaultTTL)

	// 源名过滤忽略大小写
	articles, _, err := s.ListArticles(source.CategoryAll, ListOptions{Source: "hindustan times"})
	if err != nil {
		t.Fatalf("ListArticles error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("filtered = %d, want 2", len(articles))
	}
	for _, a := range articles {
		if a.Source != "Hindustan Times" {
			t.Fatalf("unexpected source %q", a.Source)
		}
	}

	// 未知源名返回空列表而不是错误
	articles, _, err = s.ListArticles(source.CategoryAll, ListOptions{Source: "No Such Paper"})
	if err != nil {
		t.Fatalf("ListArticles error: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("unknown source = %d articles, want 0", len(articles))
	}
}

func TestConcurrentGetsRefreshOnlyOnce(t *testing.T) {
	agg := &stubAggregator{articles: mkArticles(2)}
	s := testStore(agg, DefaultTTL)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := s.Get(source.CategoryAll, false); err != nil {
				t.Errorf("Get error: %v", err)
			}
		}()
	}
	wg.Wait()

	// 单元刷新锁 + 锁内二次检查：并发首读只允许一轮抓取
	if agg.callCount() != 1 {
		t.Fatalf("concurrent gets caused %d refreshes, want 1", agg.callCount())
	}
}

func TestGetUnknownCategory(t *testing.T) {
	s := testStore(&stubAggregator{}, DefaultTTL)
	if _, _, err := s.Get(source.Category("weird"), false); err == nil {
		t.Fatal("expected error for unknown category")
	}
}
