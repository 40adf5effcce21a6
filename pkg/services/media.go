package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

var ErrUnsupportedMedia = errors.New("only image uploads are accepted")

type MediaFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"` // usable as a record image
	Type string `json:"type"`
}

// Media stores uploaded images in one directory served under a URL prefix.
type Media struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func NewMedia(dir, urlPrefix string) *Media {
	return &Media{dir: dir, urlPrefix: urlPrefix, now: time.Now}
}

func (m *Media) url(name string) string {
	return path.Join("/", m.urlPrefix, name)
}

func (m *Media) List() ([]MediaFile, error) {
	// Create if not exists
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, err
	}

	files := []MediaFile{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		mt, err := mimetype.DetectFile(filepath.Join(m.dir, entry.Name()))
		if err != nil {
			continue
		}
		files = append(files, MediaFile{
			Name: entry.Name(),
			Size: info.Size(),
			URL:  m.url(entry.Name()),
			Type: mt.String(),
		})
	}
	return files, nil
}

// Save stores an uploaded image under a timestamped name.
func (m *Media) Save(header *multipart.FileHeader) (*MediaFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mt, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, ErrUnsupportedMedia
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	filename := filepath.Base(header.Filename)
	filename = strings.ReplaceAll(filename, " ", "_")
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = mt.Extension()
	}
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = fmt.Sprintf("%s_%d%s", name, m.now().Unix(), ext)

	fullPath := SafeJoin(m.dir, "", filename)
	if fullPath == "" {
		return nil, fmt.Errorf("invalid media path")
	}
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return nil, err
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return nil, err
	}

	return &MediaFile{
		Name: filename,
		Size: size,
		URL:  m.url(filename),
		Type: mt.String(),
	}, nil
}

func (m *Media) Delete(filename string) error {
	if filename == "" || filepath.Base(filename) != filename {
		return fmt.Errorf("invalid media path")
	}
	fullPath := SafeJoin(m.dir, "", filename)
	if fullPath == "" {
		return fmt.Errorf("invalid media path")
	}
	return os.Remove(fullPath)
}
