package resolve

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/accsend/pkg/mover"
	"github.com/walteh/accsend/pkg/tracker"
	"gitlab.com/tozd/go/errors"
)

// 🗺️ Mapper translates tracker location names into mover sites. The mover site
// directory is loaded once and reused for every lookup.
type Mapper struct {
	client mover.Client

	mu    sync.Mutex
	sites map[string]mover.Site
}

// 🏭 NewMapper creates a mapper backed by the mover site directory
func NewMapper(client mover.Client) *Mapper {
	return &Mapper{client: client}
}

func (m *Mapper) directory(ctx context.Context) (map[string]mover.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sites != nil {
		return m.sites, nil
	}

	sites, err := m.client.Sites(ctx)
	if err != nil {
		return nil, errors.Errorf("loading mover sites: %w", err)
	}

	dir := make(map[string]mover.Site, len(sites))
	for _, s := range sites {
		if _, dup := dir[s.Name]; dup {
			zerolog.Ctx(ctx).Warn().Str("site", s.Name).Msg("duplicate mover site name, keeping the first")
			continue
		}
		dir[s.Name] = s
	}
	m.sites = dir

	return dir, nil
}

// 🎯 ResolveSite returns the mover site named exactly like the tracker location
func (m *Mapper) ResolveSite(ctx context.Context, locationName string) (mover.Site, error) {
	if locationName == "" {
		return mover.Site{}, ErrEmptyLocationName
	}

	dir, err := m.directory(ctx)
	if err != nil {
		return mover.Site{}, err
	}

	site, ok := dir[locationName]
	if !ok {
		return mover.Site{}, errors.Errorf("%w: %s", ErrLocationNotMapped, locationName)
	}
	return site, nil
}

// ✅ Validate checks that every name has a mover counterpart and reports all
// missing names at once
func (m *Mapper) Validate(ctx context.Context, locationNames ...string) error {
	dir, err := m.directory(ctx)
	if err != nil {
		return err
	}

	var missing []string
	for _, name := range locationNames {
		if name == "" {
			return ErrEmptyLocationName
		}
		if _, ok := dir[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.Errorf("%w: %s", ErrLocationNotMapped, strings.Join(missing, ", "))
	}
	return nil
}

// CheckTransferable rejects a location name the user may not pick as a transfer endpoint
func CheckTransferable(name string, excluded []string) error {
	if slices.Contains(excluded, name) {
		return errors.Errorf("%w: %s", ErrExcludedLocation, name)
	}
	return nil
}

// TransferableLocations filters out tracker-internal locations a user may not target
func TransferableLocations(locations []tracker.Location, excluded []string) []tracker.Location {
	skip := make(map[string]struct{}, len(excluded))
	for _, e := range excluded {
		skip[e] = struct{}{}
	}

	out := make([]tracker.Location, 0, len(locations))
	for _, l := range locations {
		if _, ok := skip[l.Name]; ok {
			continue
		}
		out = append(out, l)
	}
	return out
}
