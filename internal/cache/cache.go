package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/LJTian/NewsHub/internal/scraper"
	"github.com/LJTian/NewsHub/internal/source"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL 缓存单元的默认新鲜期
const DefaultTTL = 30 * time.Minute

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Aggregator 是缓存层对抓取流水线的唯一依赖，方便测试时替换
type Aggregator interface {
	Aggregate(sources []source.Source) ([]scraper.Article, error)
}

// cell 是一个类别的缓存单元。
// refreshMu 保证同一单元同时只有一轮刷新在跑，避免并发请求重复抓取同一批源；
// mu 保护内容读写，读方永远看到完整的一轮结果，不会读到半替换状态。
type cell struct {
	mu          sync.RWMutex
	refreshMu   sync.Mutex
	articles    []scraper.Article
	refreshedAt time.Time
}

// cellSnapshot 是写入 Redis 的序列化形态
type cellSnapshot struct {
	Articles    []scraper.Article `json:"articles"`
	RefreshedAt time.Time         `json:"refreshedAt"`
}

// Store 持有三个互相独立的缓存单元（all / domestic / international）。
// all 有自己独立的聚合与刷新周期，不由另外两个单元合并而来。
type Store struct {
	registry *source.Registry
	agg      Aggregator
	ttl      time.Duration
	rdb      *redis.Client // 可选，进程重启后用于暖启动
	now      func() time.Time
	cells    map[source.Category]*cell
}

// ListOptions 控制 ListArticles 返回结果的过滤与截断
type ListOptions struct {
	Limit        int
	Source       string // 按源名精确匹配（忽略大小写），空表示不过滤
	ForceRefresh bool
}

// New 构建缓存。rdb 可以为 nil，表示不启用 Redis 快照。
func New(registry *source.Registry, agg Aggregator, ttl time.Duration, rdb *redis.Client) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		registry: registry,
		agg:      agg,
		ttl:      ttl,
		rdb:      rdb,
		now:      time.Now,
		cells: map[source.Category]*cell{
			source.CategoryAll:           {},
			source.CategoryDomestic:      {},
			source.CategoryInternational: {},
		},
	}
	s.warmFromRedis()
	return s
}

// Get 返回类别的当前缓存内容与刷新时间。
// 单元为空、过期或 force 为真时先同步刷新；刷新失败保留旧数据继续服务。
func (s *Store) Get(cat source.Category, force bool) ([]scraper.Article, time.Time, error) {
	c, ok := s.cells[cat]
	if !ok {
		return nil, time.Time{}, fmt.Errorf("cache: unknown category %q", cat)
	}

	if force || s.isStale(c) {
		s.refreshCell(cat, c, force)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]scraper.Article, len(c.articles))
	copy(out, c.articles)
	return out, c.refreshedAt, nil
}

// ListArticles 读取缓存后先按源名过滤，再做 [1,100] 的条数截断（默认 20）
func (s *Store) ListArticles(cat source.Category, opts ListOptions) ([]scraper.Article, time.Time, error) {
	articles, refreshedAt, err := s.Get(cat, opts.ForceRefresh)
	if err != nil {
		return nil, time.Time{}, err
	}

	if opts.Source != "" {
		filtered := make([]scraper.Article, 0, len(articles))
		for _, a := range articles {
			if strings.EqualFold(a.Source, opts.Source) {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}

	return articles, refreshedAt, nil
}

// Refresh 同步强制刷新一个类别
func (s *Store) Refresh(cat source.Category) error {
	c, ok := s.cells[cat]
	if !ok {
		return fmt.Errorf("cache: unknown category %q", cat)
	}
	return s.refreshCell(cat, c, true)
}

// RefreshAsync 在后台刷新一个类别，立即返回；用于手动触发的刷新入口
func (s *Store) RefreshAsync(cat source.Category) {
	go func() {
		if err := s.Refresh(cat); err != nil {
			log.Printf("async refresh %s error: %v", cat, err)
		}
	}()
}

func (s *Store) isStale(c *cell) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt.IsZero() || s.now().Sub(c.refreshedAt) > s.ttl
}

func (s *Store) refreshCell(cat source.Category, c *cell, force bool) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// 拿到刷新锁后再查一次新鲜度：并发请求里输掉竞争的那个不必重复抓取
	if !force && !s.isStale(c) {
		return nil
	}

	articles, err := s.agg.Aggregate(s.registry.Subset(cat))
	if err != nil {
		log.Printf("refresh %s failed, serving stale cache: %v", cat, err)
		return err
	}

	refreshedAt := s.now()
	c.mu.Lock()
	c.articles = articles
	c.refreshedAt = refreshedAt
	c.mu.Unlock()

	s.saveSnapshot(cat, articles, refreshedAt)
	log.Printf("cache %s updated with %d articles", cat, len(articles))
	return nil
}

func snapshotKey(cat source.Category) string {
	return fmt.Sprintf("newshub:cell:%s", cat)
}

// saveSnapshot 把刷新结果镜像到 Redis，TTL 与单元新鲜期一致。
// 纯尽力而为：Redis 不可用不影响内存缓存继续服务。
func (s *Store) saveSnapshot(cat source.Category, articles []scraper.Article, refreshedAt time.Time) {
	if s.rdb == nil {
		return
	}
	bs, err := json.Marshal(cellSnapshot{Articles: articles, RefreshedAt: refreshedAt})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.rdb.Set(ctx, snapshotKey(cat), bs, s.ttl).Err(); err != nil {
		log.Printf("warn: redis snapshot %s: %v", cat, err)
	}
}

// warmFromRedis 进程启动时尝试用 Redis 快照回填各单元，减少重启后的首轮抓取等待。
// 快照键带 TTL，过期数据不会被读到。
func (s *Store) warmFromRedis() {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	for cat, c := range s.cells {
		bs, err := s.rdb.Get(ctx, snapshotKey(cat)).Bytes()
		if err != nil {
			continue
		}
		var snap cellSnapshot
		if err := json.Unmarshal(bs, &snap); err != nil {
			continue
		}
		c.mu.Lock()
		c.articles = snap.Articles
		c.refreshedAt = snap.RefreshedAt
		c.mu.Unlock()
		log.Printf("cache %s warmed from redis with %d articles", cat, len(snap.Articles))
	}
}
