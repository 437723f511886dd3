package domain

// ItemStore handles the local item cache (BoltDB + memory).
type ItemStore interface {
	GetItem(itemID string) (*Item, bool)
	SaveItem(item *Item) error

	// Children lists are keyed by parent; "" is the list of views
	GetChildren(parentID string) ([]*Item, bool)
	SaveChildren(parentID string, items []*Item) error

	// AllItems returns every cached item, used for offline search
	AllItems() []*Item

	Invalidate(itemID string)
	InvalidateAll()

	Close() error
}
