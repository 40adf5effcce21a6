package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

type ContentType string

const (
	TypeArticle  ContentType = "article"
	TypeBlog     ContentType = "blog"
	TypeResearch ContentType = "research"
)

type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
)

const (
	DefaultAuthor   = "InnovIA Research Team"
	DefaultReadTime = "5 min read"
	DateLayout      = "2006-01-02"
)

var ErrInvalidRecord = errors.New("invalid content record")

var validate = validator.New(validator.WithRequiredStructEnabled())

func (t ContentType) Valid() bool {
	switch t {
	case TypeArticle, TypeBlog, TypeResearch:
		return true
	}
	return false
}

func (s ContentStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// ContentRecord is the single persisted entity managed by the dashboard.
type ContentRecord struct {
	ID       string        `json:"id" yaml:"id" toml:"id"`
	Title    string        `json:"title" yaml:"title" toml:"title" validate:"required"`
	Excerpt  string        `json:"excerpt" yaml:"excerpt" toml:"excerpt"`
	Image    string        `json:"image" yaml:"image" toml:"image"`
	Date     string        `json:"date" yaml:"date" toml:"date" validate:"required,datetime=2006-01-02"`
	ReadTime string        `json:"readTime" yaml:"readTime" toml:"readTime" validate:"required"`
	Content  string        `json:"content" yaml:"-" toml:"-"`
	Tags     []string      `json:"tags" yaml:"tags" toml:"tags"`
	Type     ContentType   `json:"type" yaml:"type" toml:"type" validate:"oneof=article blog research"`
	Status   ContentStatus `json:"status" yaml:"status" toml:"status" validate:"oneof=draft published"`
	Author   string        `json:"author" yaml:"author" toml:"author" validate:"required"`
}

// ContentSummary is the read-only list projection of a ContentRecord.
type ContentSummary struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Type    ContentType   `json:"type"`
	Status  ContentStatus `json:"status"`
	Date    string        `json:"date"`
	Excerpt string        `json:"excerpt"`
}

// NewDraft returns the unsaved stub opened by "new content".
func NewDraft(t ContentType, now time.Time) ContentRecord {
	return ContentRecord{
		Type:   t,
		Status: StatusDraft,
		Date:   now.UTC().Format(DateLayout),
		Tags:   []string{},
	}
}

func (r ContentRecord) IsPublished() bool {
	return r.Status == StatusPublished
}

func (r ContentRecord) Summary() ContentSummary {
	return ContentSummary{
		ID:      r.ID,
		Title:   r.Title,
		Type:    r.Type,
		Status:  r.Status,
		Date:    r.Date,
		Excerpt: r.Excerpt,
	}
}

// WithDefaults fills unset optional fields. The author is always the fixed team name.
func (r ContentRecord) WithDefaults(now time.Time) ContentRecord {
	if r.Date == "" {
		r.Date = now.UTC().Format(DateLayout)
	}
	if r.ReadTime == "" {
		r.ReadTime = DefaultReadTime
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.Status == "" {
		r.Status = StatusDraft
	}
	r.Author = DefaultAuthor
	return r
}

// Validate checks that the record is fully populated and uses known enum values.
func (r ContentRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: field %s failed %s", ErrInvalidRecord, verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

func Summaries(records []ContentRecord) []ContentSummary {
	out := make([]ContentSummary, 0, len(records))
	for _, r := range records {
		out = append(out, r.Summary())
	}
	return out
}
