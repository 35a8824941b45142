package profile

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockStore implements Service with in-memory storage for testing.
type MockStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewMockStore creates a new in-memory profile store.
func NewMockStore() *MockStore {
	return &MockStore{profiles: make(map[string]*Profile)}
}

func (m *MockStore) Create(_ context.Context, userID string, params CreateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID = strings.TrimSpace(userID)
	if _, exists := m.profiles[userID]; exists {
		return nil, ErrAlreadyExists
	}

	now := time.Now().UTC()
	p := &Profile{
		UserID:          userID,
		Email:           strings.TrimSpace(params.Email),
		FirstName:       strings.TrimSpace(params.FirstName),
		LastName:        strings.TrimSpace(params.LastName),
		Level:           params.Level,
		TargetLanguages: trimAll(params.TargetLanguages),
		NativeLanguage:  strings.TrimSpace(params.NativeLanguage),
		Bio:             params.Bio,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.profiles[userID] = p

	return clone(p), nil
}

func (m *MockStore) Get(_ context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}

	return clone(p), nil
}

func (m *MockStore) Update(_ context.Context, userID string, params UpdateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}

	if params.Email != nil {
		p.Email = strings.TrimSpace(*params.Email)
	}
	if params.FirstName != nil {
		p.FirstName = strings.TrimSpace(*params.FirstName)
	}
	if params.LastName != nil {
		p.LastName = strings.TrimSpace(*params.LastName)
	}
	if params.Level != nil {
		p.Level = *params.Level
	}
	if params.TargetLanguages != nil {
		p.TargetLanguages = trimAll(params.TargetLanguages)
	}
	if params.NativeLanguage != nil {
		p.NativeLanguage = strings.TrimSpace(*params.NativeLanguage)
	}
	if params.Bio != nil {
		p.Bio = *params.Bio
	}
	if params.ClearPicture {
		p.PictureURL = nil
	} else if params.PictureURL != nil {
		url := strings.TrimSpace(*params.PictureURL)
		p.PictureURL = &url
	}
	p.UpdatedAt = time.Now().UTC()

	return clone(p), nil
}

func (m *MockStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[userID]; !ok {
		return ErrNotFound
	}

	delete(m.profiles, userID)

	return nil
}

func (m *MockStore) List(_ context.Context) ([]*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profiles := make([]*Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, clone(p))
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].UserID < profiles[j].UserID
	})
	return profiles, nil
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func clone(p *Profile) *Profile {
	cp := *p
	cp.TargetLanguages = make([]string, len(p.TargetLanguages))
	copy(cp.TargetLanguages, p.TargetLanguages)
	if p.PictureURL != nil {
		url := *p.PictureURL
		cp.PictureURL = &url
	}
	return &cp
}

var _ Service = (*MockStore)(nil)
