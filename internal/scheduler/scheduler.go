package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/LJTian/NewsHub/internal/cache"
	"github.com/LJTian/NewsHub/internal/source"
	"github.com/robfig/cron/v3"
)

// 三个缓存单元相互独立，各自整轮刷新
var categories = []source.Category{
	source.CategoryAll,
	source.CategoryDomestic,
	source.CategoryInternational,
}

// Scheduler 按 cron 周期在后台刷新全部缓存单元，
// 让绝大多数读请求都落在热缓存上，而不是在请求路径里等抓取。
type Scheduler struct {
	cron  *cron.Cron
	store *cache.Store
}

func New(spec string, store *cache.Store) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:  c,
		store: store,
	}

	_, err := c.AddFunc(spec, s.runOnce)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟执行首轮刷新，避免与用户启动后立刻发来的请求争抢资源
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.runOnce()
	})
}

// RunOnce 对外暴露的单次执行入口，方便手动触发刷新
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	log.Println("start refresh job...")

	var wg sync.WaitGroup
	for _, cat := range categories {
		cat := cat
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Printf("refresh %s...", cat)
			if err := s.store.Refresh(cat); err != nil {
				log.Printf("refresh %s error: %v", cat, err)
				return
			}
			log.Printf("%s refresh done", cat)
		}()
	}

	wg.Wait()
	log.Println("refresh job done (all categories)")
}
