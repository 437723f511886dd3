// Package page holds the view state shared by every screen: the backdrop
// placeholder shown behind the content and whether the header is drawn
// transparently over it.
package page

import "sync"

// DefaultBackdropOpacity is the backdrop opacity of a route that enables the
// backdrop without choosing its own
const DefaultBackdropOpacity = 0.75

// Backdrop is the placeholder currently drawn behind the page
type Backdrop struct {
	Blurhash string  `json:"blurhash"`
	Opacity  float64 `json:"opacity"`
}

// State is a snapshot of the page store
type State struct {
	Backdrop          Backdrop `json:"backdrop"`
	TransparentLayout bool     `json:"transparentLayout"`
}

// Store is the mutable page state. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a store with no backdrop at the default opacity
func NewStore() *Store {
	return &Store{state: State{Backdrop: Backdrop{Opacity: DefaultBackdropOpacity}}}
}

// State returns a copy of the current state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetBackdrop shows the given blurhash behind the page
func (s *Store) SetBackdrop(hash string) {
	s.mu.Lock()
	s.state.Backdrop.Blurhash = hash
	s.mu.Unlock()
}

// ClearBackdrop removes the backdrop placeholder, keeping its opacity
func (s *Store) ClearBackdrop() {
	s.SetBackdrop("")
}

// SetBackdropOpacity sets how strongly the backdrop shows, from 0 to 1
func (s *Store) SetBackdropOpacity(v float64) {
	s.mu.Lock()
	s.state.Backdrop.Opacity = v
	s.mu.Unlock()
}

// ResetBackdropOpacity restores DefaultBackdropOpacity
func (s *Store) ResetBackdropOpacity() {
	s.SetBackdropOpacity(DefaultBackdropOpacity)
}

// SetTransparentLayout sets whether the header is drawn over the backdrop
func (s *Store) SetTransparentLayout(v bool) {
	s.mu.Lock()
	s.state.TransparentLayout = v
	s.mu.Unlock()
}
