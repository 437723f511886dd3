package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/tui/styles"
)

// Layout constants for lists
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// ItemList is a scrollable, filterable list of library items
type ItemList struct {
	items []*domain.Item
	title string

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	loading bool
	spinner string // current spinner frame, shown while loading

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewItemList creates a list with the given title
func NewItemList(title string, items []*domain.Item) *ItemList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ItemList{
		title:       title,
		items:       items,
		filterInput: ti,
		focused:     true,
	}
}

// Update handles navigation and filter typing
func (l *ItemList) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)

	// Typing mode routes everything to the filter input
	if l.filterActive && l.filterInput.Focused() {
		if isKey {
			switch {
			case key.Matches(keyMsg, ItemListKeys.Escape):
				l.clearFilter()
				return nil
			case key.Matches(keyMsg, ItemListKeys.Accept):
				l.filterInput.Blur()
				return nil
			case keyMsg.Type == tea.KeyBackspace && l.filterInput.Value() == "":
				l.clearFilter()
				return nil
			}
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		l.applyFilter()
		return cmd
	}

	if !isKey {
		return nil
	}

	if l.filterActive {
		switch {
		case key.Matches(keyMsg, ItemListKeys.Escape):
			l.clearFilter()
			return nil
		case key.Matches(keyMsg, ItemListKeys.Filter):
			l.filterInput.Focus()
			return nil
		}
	}

	count := l.Len()
	if count == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, ItemListKeys.Down):
		if l.cursor < count-1 {
			l.cursor++
		}
	case key.Matches(keyMsg, ItemListKeys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(keyMsg, ItemListKeys.Home):
		l.cursor = 0
	case key.Matches(keyMsg, ItemListKeys.End):
		l.cursor = count - 1
	case key.Matches(keyMsg, ItemListKeys.HalfDown):
		l.cursor = min(l.cursor+max(l.maxVisible/2, 1), count-1)
	case key.Matches(keyMsg, ItemListKeys.HalfUp):
		l.cursor = max(l.cursor-max(l.maxVisible/2, 1), 0)
	}
	l.ensureVisible()
	return nil
}

// View renders the list inside its border
func (l *ItemList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent())
}

func (l *ItemList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

func (l *ItemList) SetFocused(focused bool) {
	l.focused = focused
}

func (l *ItemList) Title() string {
	return l.title
}

// SetItems replaces the content and resets selection and filter
func (l *ItemList) SetItems(items []*domain.Item) {
	l.items = items
	l.loading = false
	l.cursor = 0
	l.offset = 0
	l.clearFilter()
}

// Items returns the unfiltered content
func (l *ItemList) Items() []*domain.Item {
	return l.items
}

func (l *ItemList) SetLoading(loading bool) {
	l.loading = loading
}

func (l *ItemList) IsLoading() bool {
	return l.loading
}

// SetSpinner sets the frame shown while loading
func (l *ItemList) SetSpinner(frame string) {
	l.spinner = frame
}

// Selected returns the item under the cursor, or nil
func (l *ItemList) Selected() *domain.Item {
	if l.loading || l.cursor >= l.Len() {
		return nil
	}
	return l.items[l.mapIndex(l.cursor)]
}

// Cursor returns the cursor position within the visible (filtered) rows
func (l *ItemList) Cursor() int {
	return l.cursor
}

// Len returns the number of visible rows
func (l *ItemList) Len() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.items)
}

// ToggleFilter activates the filter input
func (l *ItemList) ToggleFilter() {
	l.filterActive = true
	l.filterInput.Focus()
	l.recalcMaxVisible()
}

// IsFilterTyping returns true if the filter input has focus
func (l *ItemList) IsFilterTyping() bool {
	return l.filterActive && l.filterInput.Focused()
}

// IsFiltering returns true while a filter is shown
func (l *ItemList) IsFiltering() bool {
	return l.filterActive
}

func (l *ItemList) recalcMaxVisible() {
	// Reserve the title line and both scroll indicators
	l.maxVisible = l.height - BorderHeight - ScrollIndicatorLines - 1
	if l.filterActive {
		l.maxVisible--
	}
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *ItemList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *ItemList) clearFilter() {
	l.filterActive = false
	l.filterQuery = ""
	l.filteredIdx = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.recalcMaxVisible()
}

func (l *ItemList) applyFilter() {
	query := l.filterInput.Value()
	l.filterQuery = query

	if query == "" {
		l.filteredIdx = nil
		return
	}

	titles := make([]string, len(l.items))
	for i, item := range l.items {
		titles[i] = strings.ToLower(item.DisplayTitle())
	}

	matches := fuzzy.Find(strings.ToLower(query), titles)
	l.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
	}

	l.cursor = 0
	l.offset = 0
}

func (l *ItemList) mapIndex(i int) int {
	if l.filteredIdx != nil && i < len(l.filteredIdx) {
		return l.filteredIdx[i]
	}
	return i
}

func (l *ItemList) renderContent() string {
	itemWidth := max(l.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	if l.loading {
		return titleLine + "\n \n" + styles.DimStyle.Render(l.spinner+" Loading...")
	}

	count := l.Len()
	if count == 0 {
		msg := "No items"
		if l.filterActive && l.filterQuery != "" {
			msg = "No matches"
		}
		content := titleLine + "\n \n" + styles.DimStyle.Render(msg)
		if l.filterActive {
			content += "\n" + l.filterInput.View()
		}
		return content
	}

	end := min(l.offset+l.maxVisible, count)
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderItem(l.items[l.mapIndex(i)], i == l.cursor, itemWidth))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if l.filterActive {
		content += "\n" + l.filterInput.View()
	}
	return content
}

func (l *ItemList) renderItem(item *domain.Item, selected bool, width int) string {
	marker := "  "
	if item.CanDrillDown() {
		marker = "▸ "
	}
	line := styles.Pad(marker+styles.Truncate(item.DisplayTitle(), width-2), width)
	if selected {
		return styles.SelectedItemStyle.Render(line)
	}
	return styles.NormalItemStyle.Render(line)
}
