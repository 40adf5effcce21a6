package models

// Tab selects which slice of the content list the dashboard shows.
type Tab string

const (
	TabOverview Tab = "overview"
	TabArticles Tab = "articles"
	TabBlogs    Tab = "blogs"
	TabResearch Tab = "research"
)

// Collection describes how one content type is presented in the dashboard.
type Collection struct {
	Type     ContentType `json:"type"`
	Tab      Tab         `json:"tab"`
	Label    string      `json:"label"`
	NewLabel string      `json:"new_label"`
	StatName string      `json:"stat_name"`
}

var Collections = []Collection{
	{Type: TypeArticle, Tab: TabArticles, Label: "Articles", NewLabel: "New Article", StatName: "Total Articles"},
	{Type: TypeBlog, Tab: TabBlogs, Label: "Blog Posts", NewLabel: "New Blog Post", StatName: "Blog Posts"},
	{Type: TypeResearch, Tab: TabResearch, Label: "Research Papers", NewLabel: "New Research", StatName: "Research Papers"},
}

// ParseTab maps a query value onto a Tab, falling back to the overview.
func ParseTab(v string) Tab {
	switch Tab(v) {
	case TabArticles, TabBlogs, TabResearch:
		return Tab(v)
	}
	return TabOverview
}

// TypeForTab returns the content type listed on a tab; false for the overview.
func TypeForTab(tab Tab) (ContentType, bool) {
	for _, col := range Collections {
		if col.Tab == tab {
			return col.Type, true
		}
	}
	return "", false
}

func CollectionFor(t ContentType) (Collection, bool) {
	for _, col := range Collections {
		if col.Type == t {
			return col, true
		}
	}
	return Collection{}, false
}

// Stats are overview counters derived from the current list.
type Stats struct {
	Articles  int `json:"articles"`
	Blogs     int `json:"blogs"`
	Research  int `json:"research"`
	Published int `json:"published"`
	Total     int `json:"total"`
}

func ComputeStats(records []ContentRecord) Stats {
	var s Stats
	for _, r := range records {
		switch r.Type {
		case TypeArticle:
			s.Articles++
		case TypeBlog:
			s.Blogs++
		case TypeResearch:
			s.Research++
		}
		if r.IsPublished() {
			s.Published++
		}
	}
	s.Total = len(records)
	return s
}
