package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"

	"innovia-cms/pkg/models"
	"innovia-cms/pkg/storage"
)

var (
	ErrNotFound    = errors.New("content not found")
	ErrIDCollision = errors.New("could not generate a unique content id")
)

const maxIDAttempts = 5

// ContentStore keeps every ContentRecord in one slot as a JSON array.
// Reads degrade to an empty list; writes replace the whole array.
type ContentStore struct {
	slots   storage.Slots
	key     string
	timeout time.Duration

	mu    sync.Mutex
	cache *gocache.Cache

	now   func() time.Time
	newID func(models.ContentType, time.Time) string
}

func NewContentStore(slots storage.Slots, key string, cacheTTL, timeout time.Duration) *ContentStore {
	return &ContentStore{
		slots:   slots,
		key:     key,
		timeout: timeout,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		now:     time.Now,
		newID:   NewContentID,
	}
}

func (s *ContentStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// LoadAll returns every persisted record, newest first. It never fails:
// a missing, unreachable or corrupt slot yields an empty list.
func (s *ContentStore) LoadAll(ctx context.Context) []models.ContentRecord {
	if cached, ok := s.cache.Get(s.key); ok {
		return cloneRecords(cached.([]models.ContentRecord))
	}

	records, err := s.read(ctx)
	if err != nil {
		slog.WarnContext(ctx, "content slot unavailable, treating as empty", "key", s.key, "error", err)
		return []models.ContentRecord{}
	}
	s.cache.SetDefault(s.key, cloneRecords(records))
	return records
}

func (s *ContentStore) Get(ctx context.Context, id string) (models.ContentRecord, error) {
	for _, r := range s.LoadAll(ctx) {
		if r.ID == id {
			return r, nil
		}
	}
	return models.ContentRecord{}, ErrNotFound
}

// Save upserts rec by id and returns the record as persisted. An empty id is
// replaced by a freshly generated one that is unique within the store. New
// records go to the front; the type of an existing record never changes.
func (s *ContentStore) Save(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	if err != nil {
		return models.ContentRecord{}, err
	}

	now := s.now()
	idx := -1
	if rec.ID == "" {
		id, err := s.generateID(rec.Type, now, records)
		if err != nil {
			return models.ContentRecord{}, err
		}
		rec.ID = id
	} else {
		idx = indexOf(records, rec.ID)
		if idx >= 0 {
			rec.Type = records[idx].Type
		}
	}

	rec = rec.WithDefaults(now)
	if err := rec.Validate(); err != nil {
		return models.ContentRecord{}, err
	}

	if idx >= 0 {
		records[idx] = rec
	} else {
		records = slices.Insert(records, 0, rec)
	}

	if err := s.write(ctx, records); err != nil {
		return models.ContentRecord{}, err
	}
	return rec, nil
}

func (s *ContentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		return ErrNotFound
	}
	records = slices.Delete(records, idx, idx+1)
	return s.write(ctx, records)
}

// Seed writes records only when the store holds nothing yet.
func (s *ContentStore) Seed(ctx context.Context, records []models.ContentRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.read(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	now := s.now()
	seeded := make([]models.ContentRecord, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			id, err := s.generateID(r.Type, now, seeded)
			if err != nil {
				return false, err
			}
			r.ID = id
		}
		r = r.WithDefaults(now)
		if err := r.Validate(); err != nil {
			return false, err
		}
		seeded = append(seeded, r)
	}
	return true, s.write(ctx, seeded)
}

func (s *ContentStore) generateID(t models.ContentType, now time.Time, records []models.ContentRecord) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID(t, now)
		if indexOf(records, id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDCollision
}

// read loads the slot itself, never the cache, since other instances may share
// it. A missing or corrupt slot is an empty collection; an unreachable backend
// is an error so writers never clobber data they could not see.
func (s *ContentStore) read(ctx context.Context) ([]models.ContentRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.slots.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.ContentRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read content slot: %w", err)
	}

	var records []models.ContentRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		slog.WarnContext(ctx, "content slot is corrupt, treating as empty", "key", s.key, "error", err)
		return []models.ContentRecord{}, nil
	}
	if records == nil {
		records = []models.ContentRecord{}
	}
	return records, nil
}

func (s *ContentStore) write(ctx context.Context, records []models.ContentRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.slots.Set(ctx, s.key, string(payload)); err != nil {
		s.cache.Delete(s.key)
		return fmt.Errorf("write content slot: %w", err)
	}
	s.cache.SetDefault(s.key, cloneRecords(records))
	return nil
}

func indexOf(records []models.ContentRecord, id string) int {
	return slices.IndexFunc(records, func(r models.ContentRecord) bool { return r.ID == id })
}

func cloneRecords(records []models.ContentRecord) []models.ContentRecord {
	out := make([]models.ContentRecord, len(records))
	for i, r := range records {
		r.Tags = slices.Clone(r.Tags)
		if r.Tags == nil {
			r.Tags = []string{}
		}
		out[i] = r
	}
	return out
}
