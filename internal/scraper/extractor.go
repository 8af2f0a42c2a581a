package scraper

import (
	"bytes"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/LJTian/NewsHub/internal/source"
	"github.com/PuerkitoBio/goquery"
)

const (
	// 每个源最多取前 10 个候选块，防止异常页面匹配出成百上千条
	maxCandidatesPerSource = 10

	minTitleRunes   = 10
	maxTextRunes    = 500
	maxSummaryRunes = 200
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// 保守的可打印白名单：字母、数字、空白与常见标点，其余字符直接去掉
	disallowedRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.,!?;:()'"“”]`)
	// 归一化标题用：只保留字母、数字与空白
	titleKeyRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
)

// Extract 按源的选择器规则从原始 HTML 中提取文章。
// 单个候选块解析失败只跳过该块；整页解析失败返回空列表，由上层记日志。
// 选择器是针对第三方页面的启发式规则，这里的每一步都必须“尽力而为”。
func Extract(body []byte, src source.Source) []Article {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Printf("parse %s (%s) failed: %v", src.Name, src.URL, err)
		return nil
	}

	candidates := doc.Find(src.Selectors.Articles)
	log.Printf("found %d potential articles from %s", candidates.Length(), src.Name)

	articles := make([]Article, 0, maxCandidatesPerSource)
	now := time.Now()

	candidates.Each(func(i int, block *goquery.Selection) {
		if i >= maxCandidatesPerSource {
			return
		}

		titleSel := block.Find(src.Selectors.Title).First()
		if titleSel.Length() == 0 {
			return
		}
		title := cleanText(titleSel.Text())
		if len([]rune(title)) < minTitleRunes {
			return
		}

		linkSel := block.Find(src.Selectors.Link).First()
		if src.Selectors.Link == "" || linkSel.Length() == 0 {
			linkSel = block.Find("a").First()
		}
		href, ok := linkSel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		link := absoluteURL(src.URL, strings.TrimSpace(href))

		summary := ""
		if src.Selectors.Summary != "" {
			summary = cleanText(block.Find(src.Selectors.Summary).First().Text())
		}
		if summary == "" {
			summary = truncateRunes(title, maxSummaryRunes)
		}

		imageURL := ""
		if imgSrc, ok := block.Find("img").First().Attr("src"); ok && strings.TrimSpace(imgSrc) != "" {
			imageURL = absoluteURL(src.URL, strings.TrimSpace(imgSrc))
		}

		articles = append(articles, Article{
			Title:       title,
			Summary:     summary,
			URL:         link,
			PublishedAt: now,
			Source:      src.Name,
			Category:    src.Category,
			ImageURL:    imageURL,
		})
	})

	return articles
}

// cleanText 折叠空白、过滤白名单外字符，并按 rune 截断到 500
func cleanText(s string) string {
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	s = strings.TrimSpace(disallowedRe.ReplaceAllString(s, ""))
	return capRunes(s, maxTextRunes)
}

// normalizeTitle 生成去重键：小写并去掉全部非字母数字、非空白字符
func normalizeTitle(title string) string {
	return titleKeyRe.ReplaceAllString(strings.ToLower(title), "")
}

// absoluteURL 将相对链接解析为绝对链接，已是绝对链接则原样返回
func absoluteURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// capRunes 按 rune 数截断，不追加任何标记
func capRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// truncateRunes 按 rune 数截断，截断时在末尾追加省略号
func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit]) + "…"
}
