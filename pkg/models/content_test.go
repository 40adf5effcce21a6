package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 20, 15, 4, 5, 0, time.UTC)

func TestNewDraft(t *testing.T) {
	d := NewDraft(TypeResearch, fixedNow)

	assert.Empty(t, d.ID)
	assert.Empty(t, d.Title)
	assert.Empty(t, d.Excerpt)
	assert.Equal(t, TypeResearch, d.Type)
	assert.Equal(t, StatusDraft, d.Status)
	assert.Equal(t, "2024-01-20", d.Date)
}

func TestWithDefaults(t *testing.T) {
	r := ContentRecord{Title: "A", Type: TypeArticle, Author: "someone else"}.WithDefaults(fixedNow)

	assert.Equal(t, "2024-01-20", r.Date)
	assert.Equal(t, DefaultReadTime, r.ReadTime)
	assert.Equal(t, DefaultAuthor, r.Author)
	assert.Equal(t, StatusDraft, r.Status)
	assert.NotNil(t, r.Tags)
	assert.Empty(t, r.Image)
	assert.Empty(t, r.Content)
}

func TestWithDefaultsKeepsSetFields(t *testing.T) {
	r := ContentRecord{
		Title:    "A",
		Date:     "2023-05-01",
		ReadTime: "12 min read",
		Tags:     []string{"ai"},
		Status:   StatusPublished,
	}.WithDefaults(fixedNow)

	assert.Equal(t, "2023-05-01", r.Date)
	assert.Equal(t, "12 min read", r.ReadTime)
	assert.Equal(t, []string{"ai"}, r.Tags)
	assert.Equal(t, StatusPublished, r.Status)
}

func TestValidate(t *testing.T) {
	valid := func() ContentRecord {
		return ContentRecord{Title: "A", Type: TypeBlog, Status: StatusDraft}.WithDefaults(fixedNow)
	}

	tests := []struct {
		name   string
		mutate func(*ContentRecord)
		field  string
	}{
		{name: "missing title", mutate: func(r *ContentRecord) { r.Title = "" }, field: "Title"},
		{name: "unknown type", mutate: func(r *ContentRecord) { r.Type = "podcast" }, field: "Type"},
		{name: "unknown status", mutate: func(r *ContentRecord) { r.Status = "archived" }, field: "Status"},
		{name: "bad date", mutate: func(r *ContentRecord) { r.Date = "20/01/2024" }, field: "Date"},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRecord))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestSummaryProjection(t *testing.T) {
	r := ContentRecord{
		ID:      "blog-1-abc",
		Title:   "T",
		Excerpt: "E",
		Content: "body",
		Tags:    []string{"x"},
		Type:    TypeBlog,
		Status:  StatusPublished,
		Date:    "2024-01-01",
	}

	assert.Equal(t, ContentSummary{
		ID:      "blog-1-abc",
		Title:   "T",
		Type:    TypeBlog,
		Status:  StatusPublished,
		Date:    "2024-01-01",
		Excerpt: "E",
	}, r.Summary())
	assert.Len(t, Summaries([]ContentRecord{r, r}), 2)
	assert.NotNil(t, Summaries(nil))
}

func TestComputeStats(t *testing.T) {
	records := []ContentRecord{
		{Type: TypeArticle, Status: StatusPublished},
		{Type: TypeArticle, Status: StatusDraft},
		{Type: TypeBlog, Status: StatusDraft},
		{Type: TypeResearch, Status: StatusPublished},
	}

	s := ComputeStats(records)
	assert.Equal(t, Stats{Articles: 2, Blogs: 1, Research: 1, Published: 2, Total: 4}, s)
	assert.Equal(t, s.Total, s.Articles+s.Blogs+s.Research)
	assert.LessOrEqual(t, s.Published, s.Total)

	assert.Equal(t, Stats{}, ComputeStats(nil))
}

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabBlogs, ParseTab("blogs"))
	assert.Equal(t, TabOverview, ParseTab(""))
	assert.Equal(t, TabOverview, ParseTab("drafts"))

	typ, ok := TypeForTab(TabResearch)
	assert.True(t, ok)
	assert.Equal(t, TypeResearch, typ)

	_, ok = TypeForTab(TabOverview)
	assert.False(t, ok)
}
