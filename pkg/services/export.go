package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"innovia-cms/pkg/models"
)

// SafeJoin joins target under root/sub, returning "" when target would escape.
func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") || filepath.IsAbs(cleanTarget) {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

// ExportPublished writes every published record to dir/<type>/<id>.md and
// returns the written paths relative to dir.
func ExportPublished(records []models.ContentRecord, dir, format string) ([]string, error) {
	written := []string{}
	for _, rec := range records {
		if !rec.IsPublished() {
			continue
		}
		rel := filepath.ToSlash(filepath.Join(string(rec.Type), rec.ID+".md"))
		fullPath := SafeJoin(dir, "", rel)
		if fullPath == "" {
			return written, fmt.Errorf("invalid export path for %q", rec.ID)
		}

		content, err := RenderDocument(rec, format)
		if err != nil {
			return written, fmt.Errorf("render %s: %w", rec.ID, err)
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(fullPath, content, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", rel, err)
		}
		written = append(written, rel)
	}
	return written, nil
}
