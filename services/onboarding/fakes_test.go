package onboarding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	accountRepo "lexmarket/database/repository/account"
	profileRepo "lexmarket/database/repository/profile"
	"lexmarket/models"
)

// memState is the shared in-memory datastore behind the fake repositories.
type memState struct {
	mu       sync.Mutex
	accounts map[string]models.Account
	profiles map[string]models.Profile
	steps    map[string]models.StepRecord
	taxonomy map[models.TaxonomyKind]map[string]bool
	audit    []models.AuditLog

	failStepUpsert error
}

func newMemState() *memState {
	return &memState{
		accounts: map[string]models.Account{},
		profiles: map[string]models.Profile{},
		steps:    map[string]models.StepRecord{},
		taxonomy: map[models.TaxonomyKind]map[string]bool{},
	}
}

func stepKey(accountID, step string) string { return accountID + "/" + step }

type memSnapshot struct {
	accounts map[string]models.Account
	profiles map[string]models.Profile
	steps    map[string]models.StepRecord
}

func (m *memState) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := memSnapshot{
		accounts: make(map[string]models.Account, len(m.accounts)),
		profiles: make(map[string]models.Profile, len(m.profiles)),
		steps:    make(map[string]models.StepRecord, len(m.steps)),
	}
	for k, v := range m.accounts {
		s.accounts[k] = v
	}
	for k, v := range m.profiles {
		s.profiles[k] = v
	}
	for k, v := range m.steps {
		s.steps[k] = v
	}
	return s
}

func (m *memState) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = s.accounts
	m.profiles = s.profiles
	m.steps = s.steps
}

// memTx serialises transactions and restores the pre-transaction state on error.
type memTx struct {
	state *memState
	mu    sync.Mutex
}

func (t *memTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	before := t.state.snapshot()
	if err := fn(ctx); err != nil {
		t.state.restore(before)
		return err
	}
	return nil
}

type memAccounts struct{ state *memState }

func (r *memAccounts) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	a, ok := r.state.accounts[id]
	if !ok {
		return nil, accountRepo.ErrAccountNotFound
	}
	return &a, nil
}

func (r *memAccounts) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, a := range r.state.accounts {
		if strings.EqualFold(a.Email, email) {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memAccounts) Create(_ context.Context, account *models.Account) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.accounts[account.ID] = *account
	return nil
}

func (r *memAccounts) UpdateContact(_ context.Context, id string, c models.ContactUpdate, at time.Time) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	a, ok := r.state.accounts[id]
	if !ok {
		return accountRepo.ErrAccountNotFound
	}
	a.PhoneNumber, a.CountryID, a.StateID, a.CityID = c.PhoneNumber, c.CountryID, c.StateID, c.CityID
	a.UpdatedAt = at
	r.state.accounts[id] = a
	return nil
}

func (r *memAccounts) UpdateFCMToken(_ context.Context, id, token string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	a, ok := r.state.accounts[id]
	if !ok {
		return accountRepo.ErrAccountNotFound
	}
	a.FCMToken = token
	r.state.accounts[id] = a
	return nil
}

func (r *memAccounts) UpdateTokenHash(_ context.Context, id, hash string) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	a, ok := r.state.accounts[id]
	if !ok {
		return accountRepo.ErrAccountNotFound
	}
	a.TokenHash = hash
	r.state.accounts[id] = a
	return nil
}

type memProfiles struct{ state *memState }

func (r *memProfiles) GetByAccountID(_ context.Context, accountID string) (*models.Profile, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	p, ok := r.state.profiles[accountID]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return &p, nil
}

func (r *memProfiles) Create(_ context.Context, profile *models.Profile) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.profiles[profile.AccountID] = *profile
	return nil
}

func (r *memProfiles) Update(_ context.Context, profile *models.Profile) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if _, ok := r.state.profiles[profile.AccountID]; !ok {
		return profileRepo.ErrProfileNotFound
	}
	if profile.EnrollmentNumber != "" {
		for id, p := range r.state.profiles {
			if id != profile.AccountID && p.EnrollmentNumber == profile.EnrollmentNumber {
				return profileRepo.ErrDuplicateEnrollment
			}
		}
	}
	r.state.profiles[profile.AccountID] = *profile
	return nil
}

func (r *memProfiles) EnrollmentNumberTaken(_ context.Context, number, exceptAccountID string) (bool, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for id, p := range r.state.profiles {
		if id != exceptAccountID && p.EnrollmentNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProfiles) UpdateStatusIf(_ context.Context, accountID string, change models.StatusChange) (bool, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	p, ok := r.state.profiles[accountID]
	if !ok {
		return false, nil
	}
	matched := false
	for _, from := range change.From {
		if p.Status == from {
			matched = true
		}
	}
	if !matched {
		return false, nil
	}
	p.Status = change.To
	p.UpdatedAt = change.At
	if change.SubmittedAt != nil {
		p.SubmittedForReviewAt = change.SubmittedAt
	}
	if change.VerifiedAt != nil {
		p.VerifiedAt = change.VerifiedAt
	}
	if change.RejectionReason != nil {
		p.RejectionReason = *change.RejectionReason
	}
	r.state.profiles[accountID] = p
	return true, nil
}

func (r *memProfiles) ListByStatus(_ context.Context, status models.ProfileStatus, _ int64) ([]models.Profile, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []models.Profile
	for _, p := range r.state.profiles {
		if p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

type memSteps struct{ state *memState }

func (r *memSteps) ListByAccount(_ context.Context, accountID string) ([]models.StepRecord, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []models.StepRecord
	for _, rec := range r.state.steps {
		if rec.AccountID == accountID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StepName < out[j].StepName })
	return out, nil
}

func (r *memSteps) Get(_ context.Context, accountID, step string) (*models.StepRecord, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	rec, ok := r.state.steps[stepKey(accountID, step)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *memSteps) Upsert(_ context.Context, record *models.StepRecord) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.state.failStepUpsert != nil {
		return r.state.failStepUpsert
	}
	r.state.steps[stepKey(record.AccountID, record.StepName)] = *record
	return nil
}

type memTaxonomy struct{ state *memState }

func (r *memTaxonomy) MissingIDs(_ context.Context, kind models.TaxonomyKind, ids []string) ([]string, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var missing []string
	for _, id := range ids {
		if !r.state.taxonomy[kind][id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *memTaxonomy) List(_ context.Context, kind models.TaxonomyKind) ([]models.TaxonomyItem, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []models.TaxonomyItem
	for id := range r.state.taxonomy[kind] {
		out = append(out, models.TaxonomyItem{ID: id, Kind: kind, Name: id})
	}
	return out, nil
}

func (r *memTaxonomy) UpsertMany(_ context.Context, items []models.TaxonomyItem) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	for _, item := range items {
		if r.state.taxonomy[item.Kind] == nil {
			r.state.taxonomy[item.Kind] = map[string]bool{}
		}
		r.state.taxonomy[item.Kind][item.ID] = true
	}
	return nil
}

type memAudit struct{ state *memState }

func (r *memAudit) Create(_ context.Context, entry models.AuditLog) (string, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	r.state.audit = append(r.state.audit, entry)
	return entry.ID, nil
}

func (r *memAudit) ListByAccount(_ context.Context, accountID string, _ int64) ([]models.AuditLog, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []models.AuditLog
	for _, e := range r.state.audit {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memAudit) actions() []string {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	out := make([]string, 0, len(r.state.audit))
	for _, e := range r.state.audit {
		out = append(out, e.Action)
	}
	return out
}

// memDocuments stores uploads in memory and fails for filenames listed in failFor.
type memDocuments struct {
	mu      sync.Mutex
	stored  map[string][]byte
	deleted []string
	failFor map[string]bool
	seq     int
}

func newMemDocuments() *memDocuments {
	return &memDocuments{stored: map[string][]byte{}, failFor: map[string]bool{}}
}

func (d *memDocuments) Store(_ context.Context, body io.Reader, filename, scope string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failFor[filename] {
		return "", errors.New("storage unavailable")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	d.seq++
	ref := fmt.Sprintf("%s/%d-%s", scope, d.seq, filename)
	d.stored[ref] = data
	return ref, nil
}

func (d *memDocuments) Delete(_ context.Context, reference string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.stored, reference)
	d.deleted = append(d.deleted, reference)
	return nil
}

type publishedEvent struct {
	Type    string
	Payload interface{}
}

type memEvents struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (e *memEvents) Publish(_ context.Context, eventType string, payload interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, publishedEvent{Type: eventType, Payload: payload})
	return nil
}

func (e *memEvents) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

func file(name string, content string) *UploadedFile {
	return &UploadedFile{
		Filename: name,
		Size:     int64(len(content)),
		Body:     bytes.NewReader([]byte(content)),
	}
}
