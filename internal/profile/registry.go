package profile

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/ehwaz/internal/apperr"
)

// Registry is the process-wide set of known computer profiles. It is
// loaded once at startup; every mutation triggers a durable save. The
// save is fire-and-forget from the caller's perspective: a failed save
// is logged but the in-memory registry stays authoritative for the rest
// of the process lifetime.
type Registry struct {
	mu       sync.Mutex
	profiles []Profile
	live     Identity
	store    Store
	logger   *slog.Logger
}

// NewRegistry loads the persisted profile list and returns a registry
// bound to the live computer identity.
func NewRegistry(store Store, live Identity, logger *slog.Logger) (*Registry, error) {
	profiles, err := store.Load()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		profiles: profiles,
		live:     live,
		store:    store,
		logger:   logger,
	}, nil
}

// Live returns the identity the registry considers the running computer.
func (r *Registry) Live() Identity {
	return r.live
}

// Add registers a new computer profile. It fails with ErrDuplicateIdentity
// when a profile with the same (platform, username) already exists and
// that identity is the live computer's: two "current" computers would make
// classification ambiguous. An empty ID is assigned a fresh uuid.
func (r *Registry) Add(p Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.profiles {
		if existing.Is(p.Identity()) && existing.Is(r.live) {
			return Profile{}, apperr.ErrDuplicateIdentity
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.profiles = append(r.profiles, p)
	r.persist()
	return p, nil
}

// Update replaces the stored profile with the same ID (sub-path edits).
func (r *Registry) Update(p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.profiles {
		if existing.ID == p.ID {
			r.profiles[i] = p
			r.persist()
			return nil
		}
	}
	return apperr.ErrNotFound
}

// Remove deletes the profile with the given ID.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.profiles {
		if existing.ID == id {
			r.profiles = append(r.profiles[:i], r.profiles[i+1:]...)
			r.persist()
			return nil
		}
	}
	return apperr.ErrNotFound
}

// List returns the profiles in insertion order. Classification order is
// registration order, so the slice order is significant.
func (r *Registry) List() []Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// Get returns the profile with the given ID.
func (r *Registry) Get(id string) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.ID == id {
			return existing, nil
		}
	}
	return Profile{}, apperr.ErrNotFound
}

// FindCurrent returns the profile matching the live identity, or nil when
// this computer has not been registered (translation is then impossible
// and paths pass through unchanged).
func (r *Registry) FindCurrent() *Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.Is(r.live) {
			p := existing
			return &p
		}
	}
	return nil
}

// persist saves the profile list; callers hold r.mu.
func (r *Registry) persist() {
	if err := r.store.Save(r.profiles); err != nil {
		r.logger.Warn("profile registry save failed",
			slog.String("error", err.Error()))
	}
}
