package sesame

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/gilleslandais/astropy/pkg/errors"
)

// DefaultMirrors are the Sesame endpoints tried in order when the registry
// has not been reconfigured: CDS Strasbourg first, the CfA VizieR mirror as
// fallback.
var DefaultMirrors = []string{
	"https://cds.unistra.fr/cgi-bin/nph-sesame/",
	"http://vizier.cfa.harvard.edu/viz-bin/nph-sesame/",
}

// Registry holds the mutable resolution configuration: the ordered mirror
// list and the currently selected database. Setters validate and replace
// the whole value atomically or reject it leaving the previous value in
// effect; readers always get a consistent snapshot, never a partial list.
//
// A single Registry may be shared process-wide. The scoped-override methods
// nest safely in a single goroutine; concurrent overrides from multiple
// goroutines should each use their own Registry instead.
type Registry struct {
	mu       sync.RWMutex
	mirrors  []string
	database Database
}

// NewRegistry creates a registry with the default mirrors and the "all"
// database selector.
func NewRegistry() *Registry {
	return &Registry{
		mirrors:  append([]string(nil), DefaultMirrors...),
		database: DatabaseAll,
	}
}

// Mirrors returns a copy of the configured mirror list.
func (r *Registry) Mirrors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.mirrors...)
}

// SetMirrors replaces the mirror list. Every entry must be an absolute
// http or https URL and the list must be non-empty; otherwise the call
// fails with a ConfigError and the previous list stays in effect.
func (r *Registry) SetMirrors(mirrors []string) error {
	if err := validateMirrors(mirrors); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.mirrors = append([]string(nil), mirrors...)
	return nil
}

// Database returns the currently selected database.
func (r *Registry) Database() Database {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.database
}

// SetDatabase replaces the database selector, rejecting unrecognized values
// with a ConfigError.
func (r *Registry) SetDatabase(db Database) error {
	if !db.Valid() {
		return errors.NewConfigError("sesame",
			fmt.Sprintf("unknown database %q (expected all, simbad, ned or vizier)", string(db)), nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.database = db
	return nil
}

// OverrideMirrors installs a new mirror list for the duration of an
// operation and returns a restore function that reinstates the previous
// list. Call restore on every exit path, typically via defer.
func (r *Registry) OverrideMirrors(mirrors []string) (restore func(), err error) {
	if err := validateMirrors(mirrors); err != nil {
		return nil, err
	}

	r.mu.Lock()
	previous := r.mirrors
	r.mirrors = append([]string(nil), mirrors...)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		r.mirrors = previous
		r.mu.Unlock()
	}, nil
}

// OverrideDatabase installs a database selector for the duration of an
// operation and returns a restore function for the previous selector.
func (r *Registry) OverrideDatabase(db Database) (restore func(), err error) {
	if !db.Valid() {
		return nil, errors.NewConfigError("sesame",
			fmt.Sprintf("unknown database %q (expected all, simbad, ned or vizier)", string(db)), nil)
	}

	r.mu.Lock()
	previous := r.database
	r.database = db
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		r.database = previous
		r.mu.Unlock()
	}, nil
}

// snapshot returns the mirror list and database under one lock acquisition,
// so a resolve call operates on a consistent view even if the registry is
// reconfigured while it runs.
func (r *Registry) snapshot() ([]string, Database) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.mirrors...), r.database
}

// validateMirrors checks the whole list before any of it is accepted.
func validateMirrors(mirrors []string) error {
	if len(mirrors) == 0 {
		return errors.NewConfigError("sesame", "mirror list must not be empty", nil)
	}
	for _, m := range mirrors {
		u, err := url.Parse(m)
		if err != nil {
			return errors.NewConfigError("sesame",
				fmt.Sprintf("invalid mirror URL %q", m), err)
		}
		if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.NewConfigError("sesame",
				fmt.Sprintf("mirror URL %q must be an absolute http(s) URL", m), nil)
		}
	}
	return nil
}
