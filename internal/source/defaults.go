package source

// DefaultRegistry 返回内置的源配置表。
// 选择器基于各站点当前的 DOM 结构，改版后在这里调整即可，不需要动提取逻辑。
func DefaultRegistry() *Registry {
	return NewRegistry([]Source{
		{
			Name:     "BBC News",
			URL:      "https://www.bbc.com/news",
			Category: CategoryInternational,
			Selectors: Selectors{
				Articles: "article, .media__content, .gs-c-promo",
				Title:    "h3, .media__title, .gs-c-promo-heading__title",
				Link:     "a",
				Summary:  ".media__summary, .gs-c-promo-summary",
			},
		},
		{
			Name:     "Reuters",
			URL:      "https://www.reuters.com/world/",
			Category: CategoryInternational,
			Selectors: Selectors{
				Articles: "[data-testid='MediaStoryCard'], .story-card",
				Title:    "[data-testid='Heading'], .story-card__headline",
				Link:     "a",
				Summary:  "[data-testid='Body'], .story-card__summary",
			},
		},
		{
			Name:     "CNN",
			URL:      "https://edition.cnn.com/",
			Category: CategoryInternational,
			Selectors: Selectors{
				Articles: ".container__item, .card",
				Title:    ".container__headline, .card__headline",
				Link:     "a",
				Summary:  ".container__summary, .card__summary",
			},
		},
		{
			Name:     "Hindustan Times",
			URL:      "https://www.hindustantimes.com/",
			Category: CategoryDomestic,
			Selectors: Selectors{
				Articles: "div[data-vars-storyid]",
				Title:    "h3, h2",
				Link:     "a",
				Summary:  "p",
			},
		},
		{
			Name:     "The Times of India",
			URL:      "https://timesofindia.indiatimes.com/",
			Category: CategoryDomestic,
			Selectors: Selectors{
				Articles: "div.list8, div.w_tle",
				Title:    "a",
				Link:     "a",
				Summary:  "p",
			},
		},
		{
			Name:     "The Indian Express",
			URL:      "https://indianexpress.com/latest-news/",
			Category: CategoryDomestic,
			Selectors: Selectors{
				Articles: "div.articles",
				Title:    "h2 a",
				Link:     "a",
				Summary:  "p",
			},
		},
		{
			Name:     "News18",
			URL:      "https://www.news18.com/news/",
			Category: CategoryDomestic,
			Selectors: Selectors{
				Articles: "div.blog-list-blog",
				Title:    "h2 a",
				Link:     "a",
				Summary:  "p",
			},
		},
	})
}
