package tui

import (
	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/placeholder"
)

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ViewsLoadedMsg signals that the user's libraries have been loaded
type ViewsLoadedMsg struct {
	Items []*domain.Item
}

// ChildrenLoadedMsg signals that the children of a folder have been loaded
type ChildrenLoadedMsg struct {
	ParentID string
	Items    []*domain.Item
}

// DetailLoadedMsg signals that a full item has been fetched
type DetailLoadedMsg struct {
	Item *domain.Item
}

// BackdropDecodedMsg carries a decoded backdrop placeholder
type BackdropDecodedMsg struct {
	Hash   string
	Pixels placeholder.Pixels
	Err    error
}
