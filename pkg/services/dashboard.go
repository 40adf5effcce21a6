package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"innovia-cms/pkg/auth"
	"innovia-cms/pkg/models"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
	ErrUnknownType        = errors.New("unknown content type")
)

// recentLimit is how many items the overview tab lists.
const recentLimit = 5

type ViewState int

const (
	StateLoading ViewState = iota
	StateRedirected
	StateListing
	StateEditing
)

func (v ViewState) String() string {
	switch v {
	case StateLoading:
		return "loading"
	case StateRedirected:
		return "redirected"
	case StateListing:
		return "listing"
	case StateEditing:
		return "editing"
	default:
		return fmt.Sprintf("ViewState(%d)", int(v))
	}
}

// Store is the persistence the dashboard delegates to.
type Store interface {
	LoadAll(ctx context.Context) []models.ContentRecord
	Save(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error)
	Delete(ctx context.Context, id string) error
}

// Dashboard mediates create/edit/delete for one operator view. It is not
// safe for concurrent use; build one per request.
type Dashboard struct {
	store   Store
	session *auth.Session
	now     func() time.Time

	state   ViewState
	tab     models.Tab
	items   []models.ContentRecord
	editing *models.ContentRecord
}

func NewDashboard(store Store, session *auth.Session) *Dashboard {
	if session == nil {
		session = &auth.Session{}
	}
	return &Dashboard{
		store:   store,
		session: session,
		now:     time.Now,
		state:   StateLoading,
		tab:     models.TabOverview,
	}
}

// Initialize checks the session and loads the list. Without a valid session
// the dashboard goes straight to Redirected and never touches the store.
func (d *Dashboard) Initialize(ctx context.Context) ViewState {
	if !d.session.Valid(d.now()) {
		d.state = StateRedirected
		return d.state
	}
	d.items = d.store.LoadAll(ctx)
	d.state = StateListing
	return d.state
}

func (d *Dashboard) State() ViewState { return d.state }

func (d *Dashboard) Session() *auth.Session { return d.session }

func (d *Dashboard) active() error {
	if d.state != StateListing && d.state != StateEditing {
		return ErrNotAuthenticated
	}
	return nil
}

// StartNew opens the editor on an unsaved draft of type t.
func (d *Dashboard) StartNew(t models.ContentType) (models.ContentRecord, error) {
	if err := d.active(); err != nil {
		return models.ContentRecord{}, err
	}
	if !t.Valid() {
		return models.ContentRecord{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	draft := models.NewDraft(t, d.now())
	d.editing = &draft
	d.state = StateEditing
	return draft, nil
}

// Edit opens the editor on the full stored record.
func (d *Dashboard) Edit(id string) (models.ContentRecord, error) {
	if err := d.active(); err != nil {
		return models.ContentRecord{}, err
	}
	idx := indexOf(d.items, id)
	if idx < 0 {
		return models.ContentRecord{}, ErrNotFound
	}
	rec := cloneRecords(d.items[idx : idx+1])[0]
	d.editing = &rec
	d.state = StateEditing
	return rec, nil
}

func (d *Dashboard) Editing() (models.ContentRecord, bool) {
	if d.editing == nil {
		return models.ContentRecord{}, false
	}
	return *d.editing, true
}

func (d *Dashboard) Cancel() {
	if d.state == StateEditing {
		d.editing = nil
		d.state = StateListing
	}
}

// Save persists input and folds the result into the list: replaced in place
// when the id is already listed, otherwise prepended. It closes the editor.
func (d *Dashboard) Save(ctx context.Context, input models.ContentRecord) (models.ContentRecord, error) {
	if err := d.active(); err != nil {
		return models.ContentRecord{}, err
	}

	if input.ID != "" {
		if idx := indexOf(d.items, input.ID); idx >= 0 {
			input.Type = d.items[idx].Type
		}
	}
	if !input.Type.Valid() {
		return models.ContentRecord{}, fmt.Errorf("%w: %q", ErrUnknownType, input.Type)
	}

	saved, err := d.store.Save(ctx, input)
	if err != nil {
		return models.ContentRecord{}, err
	}

	if idx := indexOf(d.items, saved.ID); idx >= 0 {
		d.items[idx] = saved
	} else {
		d.items = append([]models.ContentRecord{saved}, d.items...)
	}

	d.editing = nil
	d.state = StateListing
	return saved, nil
}

// Delete removes id from the store and the list once the operator has confirmed.
func (d *Dashboard) Delete(ctx context.Context, id string, confirmed bool) error {
	if err := d.active(); err != nil {
		return err
	}
	if !confirmed {
		return ErrDeleteNotConfirmed
	}
	if err := d.store.Delete(ctx, id); err != nil {
		return err
	}
	if idx := indexOf(d.items, id); idx >= 0 {
		d.items = slices.Delete(d.items, idx, idx+1)
	}
	if d.editing != nil && d.editing.ID == id {
		d.editing = nil
		d.state = StateListing
	}
	return nil
}

func (d *Dashboard) SignOut() {
	d.session.Invalidate()
	d.items = nil
	d.editing = nil
	d.state = StateRedirected
}

func (d *Dashboard) SetTab(tab models.Tab) {
	d.tab = models.ParseTab(string(tab))
}

func (d *Dashboard) Tab() models.Tab { return d.tab }

// Stats are recomputed from the current list on every call.
func (d *Dashboard) Stats() models.Stats {
	return models.ComputeStats(d.items)
}

// Items lists the active tab: the most recent entries on the overview,
// otherwise every item of the tab's type.
func (d *Dashboard) Items() []models.ContentRecord {
	return d.ItemsFor(d.tab)
}

func (d *Dashboard) ItemsFor(tab models.Tab) []models.ContentRecord {
	t, ok := models.TypeForTab(tab)
	if !ok {
		n := min(len(d.items), recentLimit)
		return cloneRecords(d.items[:n])
	}
	var out []models.ContentRecord
	for _, r := range d.items {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return cloneRecords(out)
}

// All returns every listed item.
func (d *Dashboard) All() []models.ContentRecord {
	return cloneRecords(d.items)
}
