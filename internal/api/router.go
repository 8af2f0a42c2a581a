package api

import (
	"net/http"
	"strconv"

	"github.com/LJTian/NewsHub/internal/cache"
	"github.com/LJTian/NewsHub/internal/source"
	"github.com/gin-gonic/gin"
)

type Server struct {
	cache    *cache.Store
	registry *source.Registry
}

func NewServer(cache *cache.Store, registry *source.Registry) *Server {
	return &Server{cache: cache, registry: registry}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/news", s.listNews)
		v1.POST("/news/refresh", s.refreshNews)
		v1.GET("/sources", s.listSources)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listNews(c *gin.Context) {
	cat := source.ParseCategory(c.DefaultQuery("category", "all"))

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20
	}

	articles, refreshedAt, err := s.cache.ListArticles(cat, cache.ListOptions{
		Limit:        limit,
		Source:       c.Query("source"),
		ForceRefresh: c.Query("refresh") == "true",
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}

	// 首轮刷新成功前没有时间戳，返回 null 而不是零值时间
	var lastRefreshedAt any
	if !refreshedAt.IsZero() {
		lastRefreshedAt = refreshedAt
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data": gin.H{
			"articles":        articles,
			"total":           len(articles),
			"lastRefreshedAt": lastRefreshedAt,
		},
	})
}

func (s *Server) refreshNews(c *gin.Context) {
	cat := source.ParseCategory(c.DefaultQuery("category", "all"))
	s.cache.RefreshAsync(cat)

	c.JSON(http.StatusAccepted, gin.H{
		"code":    "ok",
		"message": "refresh scheduled",
	})
}

func (s *Server) listSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    s.registry.List(),
	})
}
