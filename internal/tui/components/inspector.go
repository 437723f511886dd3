package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/tui/styles"
)

// Artwork is what the inspector shows about one item's images
type Artwork struct {
	Image     domain.ImageURLInfo
	Selection domain.ImageSelection
	Logo      domain.ImageURLInfo
	People    []PersonArtwork
}

// PersonArtwork is a cast member with their resolved portrait
type PersonArtwork struct {
	Name  string
	Role  string
	Image domain.ImageURLInfo
}

// Inspector shows the resolved artwork of the selected item
type Inspector struct {
	item    *domain.Item
	artwork Artwork
	width   int
	height  int
}

func NewInspector() Inspector {
	return Inspector{}
}

// SetItem shows an item; nil clears the panel
func (i *Inspector) SetItem(item *domain.Item, art Artwork) {
	i.item = item
	i.artwork = art
}

// Item returns the item shown
func (i *Inspector) Item() *domain.Item {
	return i.item
}

func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

func (i Inspector) View() string {
	style := styles.InspectorStyle.Width(max(i.width-styles.InspectorStyle.GetHorizontalFrameSize(), 0))
	if i.item == nil {
		return style.Render(styles.DimStyle.Render("Nothing selected"))
	}

	contentWidth := max(i.width-styles.InspectorStyle.GetHorizontalFrameSize(), 20)
	valueWidth := max(contentWidth-styles.LabelStyle.GetWidth(), 10)

	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render(styles.Truncate(i.item.DisplayTitle(), contentWidth)))
	sb.WriteString("\n")
	sb.WriteString(styles.DimBadgeStyle.Render(string(i.item.Type)))
	sb.WriteString("\n\n")

	sel := i.artwork.Selection
	if i.artwork.Image.URL == "" {
		sb.WriteString(styles.DimStyle.Render("No image"))
		sb.WriteString("\n")
	} else {
		sb.WriteString(row("Image", fmt.Sprintf("%s of %s", sel.Type, sel.ItemID), valueWidth))
		sb.WriteString(row("Tag", i.artwork.Image.Tag, valueWidth))
		if sel.Height > 0 {
			sb.WriteString(row("Height", fmt.Sprint(sel.Height), valueWidth))
		}
		sb.WriteString(row("Blurhash", orDash(i.artwork.Image.Blurhash), valueWidth))
		sb.WriteString(lipgloss.NewStyle().Width(contentWidth).Render(styles.LinkStyle.Render(i.artwork.Image.URL)))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.LabelStyle.Render("Rule") + styles.BadgeStyle.Render(sel.Rule) + "\n")

	if i.artwork.Logo.URL != "" {
		sb.WriteString("\n")
		sb.WriteString(row("Logo", i.artwork.Logo.Tag, valueWidth))
		sb.WriteString(lipgloss.NewStyle().Width(contentWidth).Render(styles.LinkStyle.Render(i.artwork.Logo.URL)))
		sb.WriteString("\n")
	}

	if i.item.Overview != "" {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Width(contentWidth).Render(styles.SubtitleStyle.Render(i.item.Overview)))
		sb.WriteString("\n")
	}

	if len(i.artwork.People) > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.AccentStyle.Render("Cast & Crew"))
		sb.WriteString("\n")
		for _, p := range i.artwork.People {
			name := p.Name
			if p.Role != "" {
				name += " as " + p.Role
			}
			portrait := styles.SuccessStyle.Render("●")
			if p.Image.URL == "" {
				portrait = styles.DimStyle.Render("○")
			}
			sb.WriteString(portrait + " " + styles.SubtitleStyle.Render(styles.Truncate(name, contentWidth-2)) + "\n")
		}
	}

	content := strings.TrimRight(sb.String(), "\n")
	if i.height > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > i.height {
			content = strings.Join(lines[:i.height], "\n")
		}
	}
	return style.Render(content)
}

func row(label, value string, width int) string {
	return styles.LabelStyle.Render(label) + styles.Truncate(value, width) + "\n"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
