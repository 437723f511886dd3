package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/kinoart/internal/placeholder"
	"github.com/mmcdole/kinoart/internal/service"
)

// Command factories for async operations

// LoadViewsCmd loads the user's libraries
func LoadViewsCmd(svc *service.ArtworkService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		items, err := svc.Views(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading libraries"}
		}
		return ViewsLoadedMsg{Items: items}
	}
}

// LoadChildrenCmd loads the children of a folder
func LoadChildrenCmd(svc *service.ArtworkService, parentID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second) // 60s for large libraries
		defer cancel()

		items, err := svc.Children(ctx, parentID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading items"}
		}
		return ChildrenLoadedMsg{ParentID: parentID, Items: items}
	}
}

// LoadDetailCmd fetches a single item with its cast list
func LoadDetailCmd(svc *service.ArtworkService, itemID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		item, err := svc.Detail(ctx, itemID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading item"}
		}
		return DetailLoadedMsg{Item: item}
	}
}

// DecodeBackdropCmd decodes a backdrop blurhash off the UI goroutine
func DecodeBackdropCmd(decoder *placeholder.Decoder, hash string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		px, err := decoder.Decode(ctx, placeholder.Request{Hash: hash})
		return BackdropDecodedMsg{Hash: hash, Pixels: px, Err: err}
	}
}
