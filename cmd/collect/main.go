package main

import (
	"log"

	"github.com/LJTian/NewsHub/internal/config"
	"github.com/LJTian/NewsHub/internal/scraper"
	"github.com/LJTian/NewsHub/internal/source"
)

// 一个仅执行一轮聚合的命令行入口：适合手动验证源配置与选择器规则
func main() {
	cfg := config.Load()

	registry := source.DefaultRegistry()
	sc := scraper.New(cfg.FetchTimeout)

	articles, err := sc.Aggregate(registry.Subset(source.CategoryAll))
	if err != nil {
		log.Fatalf("aggregate failed: %v", err)
	}

	for _, a := range articles {
		log.Printf("[%s/%s] %s -> %s", a.Category, a.Source, a.Title, a.URL)
	}
	log.Printf("aggregate done, %d unique articles from %d sources", len(articles), registry.Len())
}
