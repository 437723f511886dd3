package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/kinoart/internal/artwork"
	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/page"
	"github.com/mmcdole/kinoart/internal/placeholder"
	"github.com/mmcdole/kinoart/internal/service"
	"github.com/mmcdole/kinoart/internal/tui/components"
	"github.com/mmcdole/kinoart/internal/tui/styles"
)

// Route names, matched against the configured route metadata
const (
	RouteLibraries = "libraries"
	RouteItems     = "items"
	RouteItem      = "item"
)

// Layout proportions
const (
	ListColumnPercent = 45
	MinColumnWidth    = 20

	// Header and footer take one line each
	ChromeHeight = 2

	MaxBackdropRows = 8
)

// level is one entry of the browse stack
type level struct {
	list   *components.ItemList
	parent *domain.Item // nil for the libraries list
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	Svc     *service.ArtworkService
	Decoder *placeholder.Decoder
	Nav     *page.Navigator
	Logger  *slog.Logger

	// Image preferences applied to every selection
	Options artwork.Options

	// UI components
	stack     []*level
	detail    *domain.Item // open item page, nil while browsing
	Inspector components.Inspector
	Spinner   spinner.Model
	Help      help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	ShowHelp    bool

	// Decoded page backdrop
	backdropHash string
	backdrop     placeholder.Pixels
}

// NewModel creates the application model on the libraries route
func NewModel(svc *service.ArtworkService, decoder *placeholder.Decoder, nav *page.Navigator, opts artwork.Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	root := components.NewItemList("Libraries", nil)
	root.SetLoading(true)

	nav.Navigate(RouteLibraries)

	return Model{
		Svc:       svc,
		Decoder:   decoder,
		Nav:       nav,
		Logger:    logger,
		Options:   opts,
		stack:     []*level{{list: root}},
		Inspector: components.NewInspector(),
		Spinner:   sp,
		Help:      help.New(),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadViewsCmd(m.Svc),
		m.Spinner.Tick,
	)
}

// Route returns the current route name
func (m Model) Route() string {
	return m.Nav.Current()
}

// Detail returns the open item page, if any
func (m Model) Detail() *domain.Item {
	return m.detail
}

// Depth returns the number of lists on the browse stack
func (m Model) Depth() int {
	return len(m.stack)
}

// CurrentList returns the list on top of the browse stack
func (m Model) CurrentList() *components.ItemList {
	return m.top().list
}

func (m Model) top() *level {
	return m.stack[len(m.stack)-1]
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		for _, lvl := range m.stack {
			lvl.list.SetSpinner(m.Spinner.View())
		}

	case ViewsLoadedMsg:
		m.stack[0].list.SetItems(msg.Items)
		m.StatusMsg = ""

	case ChildrenLoadedMsg:
		for _, lvl := range m.stack {
			if lvl.parent != nil && lvl.parent.ID == msg.ParentID {
				lvl.list.SetItems(msg.Items)
			}
		}
		m.StatusMsg = ""

	case DetailLoadedMsg:
		if m.detail != nil && m.detail.ID == msg.Item.ID {
			m.detail = msg.Item
			cmd = m.enterRoute(RouteItem, msg.Item)
		}

	case BackdropDecodedMsg:
		m.handleBackdrop(msg)

	case ErrMsg:
		m.Logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		for _, lvl := range m.stack {
			lvl.list.SetLoading(false)
		}

	case tea.KeyMsg:
		var model tea.Model
		model, cmd = m.handleKeyMsg(msg)
		m = model.(Model)
	}

	m.updateInspector()
	m.updateLayout()
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.top().list

	// The filter input owns the keyboard while typing
	if m.detail == nil && list.IsFilterTyping() {
		return m, list.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = !m.ShowHelp
		m.Help.ShowAll = m.ShowHelp
		return m, nil

	case msg.Type == tea.KeyEsc && m.detail == nil && list.IsFiltering():
		return m, list.Update(msg)

	case key.Matches(msg, Keys.Back):
		return m.handleBack()

	case key.Matches(msg, Keys.Enter):
		return m.handleEnter()

	case key.Matches(msg, Keys.Filter):
		if m.detail == nil {
			list.ToggleFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		cmd := m.refreshCurrent()
		return m, cmd

	case key.Matches(msg, Keys.RefreshAll):
		m.Svc.Refresh("")
		m.detail = nil
		m.stack = m.stack[:1]
		m.stack[0].list.SetLoading(true)
		m.StatusMsg = "Refreshing all libraries"
		m.StatusIsErr = false
		cmd := m.enterRoute(RouteLibraries, nil)
		return m, tea.Batch(cmd, LoadViewsCmd(m.Svc))

	case key.Matches(msg, Keys.PreferThumb):
		m.Options.PreferThumb = !m.Options.PreferThumb
		m.StatusMsg = fmt.Sprintf("Prefer thumb: %t", m.Options.PreferThumb)
		m.StatusIsErr = false
		return m, nil

	case key.Matches(msg, Keys.PreferBackdrop):
		m.Options.PreferBackdrop = !m.Options.PreferBackdrop
		m.StatusMsg = fmt.Sprintf("Prefer backdrop: %t", m.Options.PreferBackdrop)
		m.StatusIsErr = false
		return m, nil
	}

	if m.detail == nil {
		return m, list.Update(msg)
	}
	return m, nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.detail != nil {
		return m, nil
	}
	item := m.top().list.Selected()
	if item == nil {
		return m, nil
	}

	if item.CanDrillDown() {
		list := components.NewItemList(item.DisplayTitle(), nil)
		list.SetLoading(true)
		list.SetSpinner(m.Spinner.View())
		m.stack = append(m.stack, &level{list: list, parent: item})
		cmd := m.enterRoute(RouteItems, item)
		return m, tea.Batch(cmd, LoadChildrenCmd(m.Svc, item.ID))
	}

	m.detail = item
	cmd := m.enterRoute(RouteItem, item)
	return m, tea.Batch(cmd, LoadDetailCmd(m.Svc, item.ID))
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	switch {
	case m.detail != nil:
		m.detail = nil
	case len(m.stack) > 1:
		m.stack = m.stack[:len(m.stack)-1]
	default:
		return m, nil
	}
	cmd := m.enterBrowseRoute()
	return m, cmd
}

// enterBrowseRoute re-enters the route of the list on top of the stack
func (m *Model) enterBrowseRoute() tea.Cmd {
	if parent := m.top().parent; parent != nil {
		return m.enterRoute(RouteItems, parent)
	}
	return m.enterRoute(RouteLibraries, nil)
}

// enterRoute applies the route's metadata and, when the route shows a
// backdrop, points it at the owner's backdrop image
func (m *Model) enterRoute(route string, owner *domain.Item) tea.Cmd {
	m.Nav.Navigate(route)
	if owner != nil && m.Nav.Meta(route).Backdrop.Enabled {
		m.Nav.Store().SetBackdrop(service.BackdropHash(owner))
	}
	return m.syncBackdrop()
}

// syncBackdrop starts decoding the page backdrop when it changed
func (m *Model) syncBackdrop() tea.Cmd {
	hash := m.Nav.Store().State().Backdrop.Blurhash
	if hash == m.backdropHash {
		return nil
	}
	m.backdropHash = hash
	m.backdrop = placeholder.Pixels{}
	if hash == "" || m.Decoder == nil {
		return nil
	}
	return DecodeBackdropCmd(m.Decoder, hash)
}

func (m *Model) handleBackdrop(msg BackdropDecodedMsg) {
	// A newer backdrop replaced this one while it was decoding
	if msg.Hash != m.backdropHash {
		return
	}
	if msg.Err != nil {
		m.Logger.Warn("backdrop decode failed", "hash", msg.Hash, "error", msg.Err)
		return
	}
	m.backdrop = msg.Pixels
}

// refreshCurrent drops the cache behind the current screen and reloads it
func (m *Model) refreshCurrent() tea.Cmd {
	m.StatusMsg = "Refreshing"
	m.StatusIsErr = false

	if m.detail != nil {
		m.Svc.Refresh(m.detail.ID)
		return LoadDetailCmd(m.Svc, m.detail.ID)
	}

	lvl := m.top()
	lvl.list.SetLoading(true)
	if lvl.parent == nil {
		// The views list has no owning item
		m.Svc.Refresh("")
		return LoadViewsCmd(m.Svc)
	}
	m.Svc.Refresh(lvl.parent.ID)
	return LoadChildrenCmd(m.Svc, lvl.parent.ID)
}

func (m *Model) updateInspector() {
	item := m.detail
	if item == nil {
		item = m.top().list.Selected()
	}
	if item == nil {
		m.Inspector.SetItem(nil, components.Artwork{})
		return
	}
	m.Inspector.SetItem(item, m.artworkFor(item))
}

func (m Model) artworkFor(item *domain.Item) components.Artwork {
	info, sel := m.Svc.Explain(item, m.Options)
	resolver := m.Svc.Resolver()

	art := components.Artwork{
		Image:     info,
		Selection: sel,
		Logo: resolver.Logo(item, artwork.LogoOptions{
			Quality: m.Options.Quality,
			Width:   m.Options.Width,
			Ratio:   m.Options.Ratio,
		}),
	}
	for _, p := range item.People {
		art.People = append(art.People, components.PersonArtwork{
			Name: p.Name,
			Role: p.Role,
			Image: resolver.ImageInfo(p.Item(), artwork.Options{
				Quality: m.Options.Quality,
				Ratio:   m.Options.Ratio,
			}),
		})
	}
	return art
}

func (m Model) backdropRows() int {
	if m.backdrop.Width == 0 {
		return 0
	}
	return min(MaxBackdropRows, m.Height/4)
}

func (m *Model) updateLayout() {
	if !m.Ready {
		return
	}

	bodyHeight := max(m.Height-ChromeHeight-m.backdropRows(), 3)

	if m.detail != nil {
		m.Inspector.SetSize(m.Width, bodyHeight)
		return
	}

	listWidth := max(m.Width*ListColumnPercent/100, MinColumnWidth)
	m.top().list.SetSize(listWidth, bodyHeight)
	m.Inspector.SetSize(max(m.Width-listWidth, 0), bodyHeight)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	state := m.Nav.Store().State()

	var sections []string
	sections = append(sections, m.renderHeader(state))

	if rows := m.backdropRows(); rows > 0 {
		sections = append(sections, placeholder.RenderTerminal(m.backdrop, m.Width, rows, state.Backdrop.Opacity))
	}

	if m.detail != nil {
		sections = append(sections, m.Inspector.View())
	} else {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, m.top().list.View(), m.Inspector.View()))
	}

	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(state page.State) string {
	crumbs := []string{"Kinoart"}
	for _, lvl := range m.stack[1:] {
		crumbs = append(crumbs, lvl.parent.DisplayTitle())
	}
	if m.detail != nil {
		crumbs = append(crumbs, m.detail.DisplayTitle())
	}

	style := styles.HeaderStyle
	if state.TransparentLayout {
		style = styles.TransparentHeaderStyle
	}
	text := styles.Truncate(strings.Join(crumbs, " › "), max(m.Width-style.GetHorizontalFrameSize(), 1))
	return style.Width(m.Width).Render(text)
}

func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(styles.Truncate(m.StatusMsg, m.Width))
		}
		return styles.DimStyle.Render(styles.Truncate(m.StatusMsg, m.Width))
	}
	m.Help.Width = m.Width
	return m.Help.View(Keys)
}
