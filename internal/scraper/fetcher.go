package scraper

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// DefaultFetchTimeout 单次页面抓取的默认超时
const DefaultFetchTimeout = 10 * time.Second

// 部分站点会拒绝非浏览器 UA 的请求，统一伪装成常见浏览器
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// FetchPage 对 url 发起一次带超时的 GET，返回原始 HTML。
// 网络错误、非 2xx、超时统一以 error 返回，不做重试。
// Accept-Encoding 不显式设置，由底层 Transport 自动协商并解压 gzip。
func FetchPage(url string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	c := colly.NewCollector(
		colly.UserAgent(browserUserAgent),
	)
	c.SetRequestTimeout(timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
		r.Headers.Set("Connection", "keep-alive")
	})

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("fetch %s: empty response body", url)
	}
	return body, nil
}
