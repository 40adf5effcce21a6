package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"innovia-cms/pkg/models"
)

// Front matter formats accepted by RenderDocument.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// ParseFrontMatter splits a markdown document into its front matter map, the
// body and the detected format.
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	str := normalizeLineEndings(string(content))
	// Check for YAML (---)
	if fmText, body, ok := splitFrontMatter(str, "---"); ok {
		var fm map[string]interface{}
		if err := yaml.Unmarshal([]byte(fmText), &fm); err == nil {
			return fm, strings.TrimSpace(body), FormatYAML, nil
		}
	}
	// Check for TOML (+++)
	if fmText, body, ok := splitFrontMatter(str, "+++"); ok {
		var fm map[string]interface{}
		if err := toml.Unmarshal([]byte(fmText), &fm); err == nil {
			return fm, strings.TrimSpace(body), FormatTOML, nil
		}
	}
	// Check for JSON ({)
	if strings.HasPrefix(strings.TrimSpace(str), "{") {
		var fm map[string]interface{}
		if err := json.Unmarshal([]byte(str), &fm); err == nil {
			body, _ := fm["content"].(string)
			delete(fm, "content")
			return fm, body, FormatJSON, nil
		}
	}

	return nil, "", "", fmt.Errorf("unknown format")
}

// splitFrontMatter cuts str at the delimiter lines. Only a line holding
// nothing but delim opens or closes the block.
func splitFrontMatter(str, delim string) (string, string, bool) {
	lines := strings.SplitAfter(str, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\n") != delim {
		return "", "", false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\n") == delim {
			return strings.Join(lines[1:i], ""), strings.Join(lines[i+1:], ""), true
		}
	}
	return "", "", false
}

// ConstructFileContent renders front matter and body back into one document.
func ConstructFileContent(fm map[string]interface{}, body string, format string) ([]byte, error) {
	if fm == nil {
		fm = map[string]interface{}{}
	}

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fm); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case FormatTOML:
		buf.WriteString("+++\n")
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(fm); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	case FormatJSON:
		withBody := make(map[string]interface{}, len(fm)+1)
		for k, v := range fm {
			withBody[k] = v
		}
		withBody["content"] = body
		out, err := json.MarshalIndent(withBody, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// RenderDocument renders rec as a markdown document with front matter.
func RenderDocument(rec models.ContentRecord, format string) ([]byte, error) {
	tags := make([]interface{}, len(rec.Tags))
	for i, t := range rec.Tags {
		tags[i] = t
	}
	fm := map[string]interface{}{
		"id":       rec.ID,
		"title":    rec.Title,
		"excerpt":  rec.Excerpt,
		"image":    rec.Image,
		"date":     rec.Date,
		"readTime": rec.ReadTime,
		"tags":     tags,
		"type":     string(rec.Type),
		"status":   string(rec.Status),
		"author":   rec.Author,
	}
	return ConstructFileContent(fm, rec.Content, format)
}

// ParseDocument reads a document produced by RenderDocument (or written by
// hand) back into a record. Missing fields stay empty for the store to default.
func ParseDocument(content []byte) (models.ContentRecord, error) {
	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		return models.ContentRecord{}, err
	}
	fm = sanitizeFrontMatter(fm)

	rec := models.ContentRecord{
		ID:       stringValue(fm["id"]),
		Title:    stringValue(fm["title"]),
		Excerpt:  stringValue(fm["excerpt"]),
		Image:    stringValue(fm["image"]),
		Date:     stringValue(fm["date"]),
		ReadTime: stringValue(fm["readTime"]),
		Content:  body,
		Tags:     stringList(fm["tags"]),
		Type:     models.ContentType(stringValue(fm["type"])),
		Status:   models.ContentStatus(stringValue(fm["status"])),
	}
	return rec, nil
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.UTC().Format(models.DateLayout)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func stringList(v interface{}) []string {
	switch list := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s := strings.TrimSpace(stringValue(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return list
	case string:
		return SplitTags(list)
	default:
		return []string{}
	}
}

// SplitTags turns "a, b,,c" into [a b c].
func SplitTags(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}
