package page

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// BackdropMeta is a route's backdrop declaration. A bare `true` is Enabled with
// no Opacity; an `{opacity: n}` payload is Enabled with Payload and Opacity set.
// A payload without an opacity leaves the current opacity alone.
type BackdropMeta struct {
	Enabled bool
	Payload bool
	Opacity *float64
}

// RouteMeta is the per-route view metadata
type RouteMeta struct {
	TransparentLayout bool
	Backdrop          BackdropMeta
}

// ParseBackdropMeta reads a backdrop declaration as it comes out of a config
// file: nil, a bool, or a map with an optional "opacity" number.
func ParseBackdropMeta(v any) (BackdropMeta, error) {
	switch b := v.(type) {
	case nil:
		return BackdropMeta{}, nil
	case bool:
		return BackdropMeta{Enabled: b}, nil
	case map[string]any:
		return backdropFromMap(b)
	case map[any]any:
		m := make(map[string]any, len(b))
		for k, val := range b {
			m[fmt.Sprint(k)] = val
		}
		return backdropFromMap(m)
	default:
		return BackdropMeta{}, fmt.Errorf("backdrop must be a bool or {opacity}, got %T", v)
	}
}

func backdropFromMap(m map[string]any) (BackdropMeta, error) {
	meta := BackdropMeta{Enabled: true, Payload: true}
	for k, raw := range m {
		if !strings.EqualFold(k, "opacity") {
			continue
		}
		var o float64
		switch n := raw.(type) {
		case float64:
			o = n
		case float32:
			o = float64(n)
		case int:
			o = float64(n)
		case int64:
			o = float64(n)
		default:
			return BackdropMeta{}, fmt.Errorf("backdrop opacity must be a number, got %T", raw)
		}
		if o < 0 || o > 1 {
			return BackdropMeta{}, fmt.Errorf("backdrop opacity %v out of range [0,1]", o)
		}
		meta.Opacity = &o
	}
	return meta, nil
}

// Apply updates the store for a route transition. At most one backdrop change
// happens: an active backdrop is cleared when the route declares none, a bare
// declaration restores the default opacity, and a payload sets its opacity if
// it carries one.
// The transparent layout flag always follows the route.
func Apply(s *Store, meta RouteMeta) {
	current := s.State().Backdrop

	switch {
	case !meta.Backdrop.Enabled && current.Blurhash != "":
		s.ClearBackdrop()
	case meta.Backdrop.Enabled && !meta.Backdrop.Payload && current.Opacity != DefaultBackdropOpacity:
		s.ResetBackdropOpacity()
	case meta.Backdrop.Opacity != nil:
		s.SetBackdropOpacity(*meta.Backdrop.Opacity)
	}

	s.SetTransparentLayout(meta.TransparentLayout)
}

// Navigator applies route metadata to a store as screens change
type Navigator struct {
	mu      sync.Mutex
	store   *Store
	routes  map[string]RouteMeta
	current string
	logger  *slog.Logger
}

// NewNavigator creates a navigator over a route table. Routes missing from the
// table behave as routes that declare nothing.
func NewNavigator(store *Store, routes map[string]RouteMeta, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	if routes == nil {
		routes = map[string]RouteMeta{}
	}
	return &Navigator{store: store, routes: routes, logger: logger}
}

// Navigate enters a route and returns the resulting page state
func (n *Navigator) Navigate(route string) State {
	n.mu.Lock()
	defer n.mu.Unlock()

	meta, ok := n.routes[route]
	if !ok {
		n.logger.Debug("route has no metadata", "route", route)
	}
	Apply(n.store, meta)
	n.current = route
	return n.store.State()
}

// Meta returns the metadata declared for a route
func (n *Navigator) Meta(route string) RouteMeta {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.routes[route]
}

// Current returns the last route entered
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Store returns the page store the navigator updates
func (n *Navigator) Store() *Store {
	return n.store
}

// Routes lists the configured route names in order
func (n *Navigator) Routes() []string {
	names := make([]string, 0, len(n.routes))
	for name := range n.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
