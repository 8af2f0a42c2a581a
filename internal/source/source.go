package source

// Category 标记新闻源的类别：国内（Domestic）或国际（International）
type Category string

const (
	// CategoryAll 不是源本身的类别，仅用于按子集聚合时表示“全部源”
	CategoryAll           Category = "all"
	CategoryDomestic      Category = "domestic"
	CategoryInternational Category = "international"
)

// ParseCategory 将外部传入的类别字符串解析为 Category，未知值回退到 all
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryDomestic, CategoryInternational:
		return Category(s)
	default:
		return CategoryAll
	}
}

// Selectors 描述一个源页面的结构化提取规则，全部为 CSS 选择器。
// 规则是针对第三方页面的“尽力而为”式匹配，页面改版后只需调整这里的数据。
type Selectors struct {
	Articles string // 定位每个候选文章块，必填
	Title    string // 标题，必填
	Link     string // 链接，可选；未命中时回退到块内第一个 a 标签
	Summary  string // 摘要，可选；缺失时用标题兜底
}

// Source 描述一个新闻源：站点名、入口 URL、类别与提取规则。
// 进程启动时构建一次，之后只读共享给所有并发抓取。
type Source struct {
	Name      string
	URL       string
	Category  Category
	Selectors Selectors
}

// Info 是对外暴露源列表时的精简视图
type Info struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Category Category `json:"category"`
}

// Registry 持有全部源描述，构建后不可变
type Registry struct {
	sources []Source
}

func NewRegistry(sources []Source) *Registry {
	return &Registry{sources: sources}
}

// Subset 按类别返回源子集（registry 顺序）；CategoryAll 返回全部
func (r *Registry) Subset(cat Category) []Source {
	if cat == CategoryAll {
		return r.sources
	}
	out := make([]Source, 0, len(r.sources))
	for _, s := range r.sources {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// List 返回全部源的精简视图，用于 /sources 接口
func (r *Registry) List() []Info {
	out := make([]Info, 0, len(r.sources))
	for _, s := range r.sources {
		out = append(out, Info{Name: s.Name, URL: s.URL, Category: s.Category})
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.sources)
}
