// Package tui is the terminal storefront: a bubbletea program over one guest
// Storefront. Every frame is rendered from the storefront's current snapshot.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/saborshop/storefront/internal/core/domain"
	"github.com/saborshop/storefront/internal/core/service"
	"github.com/saborshop/storefront/internal/view"
)

// PixelsPerColumn converts terminal columns to the logical pixels the
// responsive policy is defined in.
const PixelsPerColumn = 8

const persistWarning = "Your cart changed but could not be saved."

type loadedMsg struct {
	category string
	err      error
}

type detailMsg struct {
	detail view.DetailView
}

// Model is the bubbletea model of the terminal storefront.
type Model struct {
	ctx context.Context
	sf  *service.Storefront
	log zerolog.Logger

	categories []string
	catIdx     int
	sortIdx    int

	cursor     int
	cartCursor int
	detail     *view.DetailView
	status     string
	width      int
	height     int
	// fixedWidth keeps the layout the storefront was built with instead of
	// following the terminal size.
	fixedWidth bool
}

// Option configures a Model.
type Option func(*Model)

// WithFixedWidth pins the responsive layout: terminal resizes still redraw
// but no longer reclassify the viewport.
func WithFixedWidth() Option {
	return func(m *Model) { m.fixedWidth = true }
}

// New builds the model. categories is the tab cycle; initial is selected
// first and added to the cycle when missing.
func New(ctx context.Context, sf *service.Storefront, categories []string, initial string, log zerolog.Logger, opts ...Option) *Model {
	cats := append([]string(nil), categories...)
	idx := -1
	for i, c := range cats {
		if strings.EqualFold(c, initial) {
			idx = i
			break
		}
	}
	if idx < 0 && initial != "" {
		cats = append([]string{initial}, cats...)
		idx = 0
	}
	if idx < 0 {
		idx = 0
	}
	if len(cats) == 0 {
		cats = []string{domain.DefaultCategory}
	}
	m := &Model{ctx: ctx, sf: sf, log: log, categories: cats, catIdx: idx, sortIdx: -1}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Categories returns the default tab cycle: all featured categories merged,
// then each one.
func Categories() []string {
	return append([]string{domain.AllCategories}, domain.FeaturedCategories...)
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) category() string {
	return m.categories[m.catIdx]
}

// load starts an asynchronous category load.
func (m *Model) load() tea.Cmd {
	category := m.category()
	m.status = fmt.Sprintf("Loading %s...", category)
	m.detail = nil
	sf, ctx := m.sf, m.ctx
	return func() tea.Msg {
		_, err := sf.LoadCategory(ctx, category)
		return loadedMsg{category: category, err: err}
	}
}

func (m *Model) loadDetail(id string) tea.Cmd {
	sf, ctx := m.sf, m.ctx
	return func() tea.Msg {
		d, err := sf.Detail(ctx, id)
		return detailMsg{detail: view.Detail(d, err)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.fixedWidth {
			return m, nil
		}
		l := m.sf.Resize(msg.Width * PixelsPerColumn)
		m.log.Debug().Int("columns", msg.Width).Str("mode", l.Mode()).Msg("terminal resized")
		return m, nil

	case loadedMsg:
		switch {
		case errors.Is(msg.err, domain.ErrStaleLoad):
			// A newer load owns the catalog and the status line.
		case msg.err != nil:
			m.status = fmt.Sprintf("Could not load %s. Try another category.", msg.category)
		default:
			m.cursor = 0
			m.status = ""
		}
		return m, nil

	case detailMsg:
		d := msg.detail
		m.detail = &d
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.detail = nil
		return m, nil
	case "c":
		if m.sf.Screen() == service.ScreenCart {
			m.sf.Show(service.ScreenCatalog)
		} else {
			m.sf.Show(service.ScreenCart)
		}
		m.detail = nil
		return m, nil
	case "tab":
		m.catIdx = (m.catIdx + 1) % len(m.categories)
		m.sortIdx = -1
		return m, m.load()
	}

	if m.sf.Screen() == service.ScreenCart {
		m.handleCartKey(key)
		return m, nil
	}
	return m, m.handleCatalogKey(key)
}

func (m *Model) handleCatalogKey(key string) tea.Cmd {
	items := m.sf.Catalog().Items
	switch key {
	case "j", "down":
		if len(items) == 0 {
			return nil
		}
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		// Reaching the last card is the scroll trigger.
		if m.cursor >= len(items)-1 {
			m.reveal(service.TriggerScroll)
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "m":
		if !m.sf.Catalog().ShowButton {
			m.status = "Scroll down to see more recipes."
			return nil
		}
		m.reveal(service.TriggerButton)
	case "s":
		next := (m.sortIdx + 1) % len(domain.SortOrders)
		order := domain.SortOrders[next]
		res, err := m.sf.Sort(order)
		if err != nil {
			m.status = err.Error()
			return nil
		}
		if res.Refused {
			m.status = "Still loading, try sorting again in a moment."
			return nil
		}
		m.sortIdx = next
		if res.Reset {
			m.cursor = 0
		}
		m.status = "Sorted by " + string(order)
	case "a":
		if m.cursor >= len(items) {
			return nil
		}
		item := items[m.cursor]
		_, err := m.sf.AddToCart(m.ctx, item.ID)
		m.status = cartStatus(err, "Added "+item.Name)
	case "enter":
		if m.cursor >= len(items) {
			return nil
		}
		return m.loadDetail(items[m.cursor].ID)
	}
	return nil
}

func (m *Model) reveal(trigger service.Trigger) {
	res := m.sf.Reveal(trigger)
	switch {
	case res.Refused && res.RefusedReason == service.RefusedExhausted:
		m.status = "That's every recipe in this category."
	case res.Refused:
		m.log.Debug().Str("trigger", string(trigger)).Str("reason", res.RefusedReason).Msg("reveal refused")
	case len(res.Items) == 0:
		m.status = "That's every recipe in this category."
	default:
		m.status = ""
	}
}

func (m *Model) handleCartKey(key string) {
	lines := m.sf.Cart().Lines
	if len(lines) == 0 {
		return
	}
	if m.cartCursor >= len(lines) {
		m.cartCursor = len(lines) - 1
	}
	line := lines[m.cartCursor]

	var err error
	switch key {
	case "j", "down":
		if m.cartCursor < len(lines)-1 {
			m.cartCursor++
		}
		return
	case "k", "up":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
		return
	case "+", "=":
		_, err = m.sf.AdjustQuantity(m.ctx, line.ID, 1)
	case "-":
		_, err = m.sf.AdjustQuantity(m.ctx, line.ID, -1)
	case "x":
		_, err = m.sf.RemoveFromCart(m.ctx, line.ID)
	default:
		return
	}
	m.status = cartStatus(err, "")
	if n := len(m.sf.Cart().Lines); m.cartCursor >= n && n > 0 {
		m.cartCursor = n - 1
	}
}

func cartStatus(err error, ok string) string {
	switch {
	case errors.Is(err, domain.ErrPersistence):
		return persistWarning
	case err != nil:
		return err.Error()
	}
	return ok
}

func (m *Model) View() tea.View {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch {
	case m.detail != nil:
		b.WriteString(m.renderDetail())
	case m.sf.Screen() == service.ScreenCart:
		b.WriteString(m.renderCart())
	default:
		b.WriteString(m.renderCatalog())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help()))

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

func (m *Model) header() string {
	greeting := m.sf.Session().Greeting()
	if greeting == "" {
		greeting = "guest"
	}
	parts := []string{titleStyle.Render("Sabor Navideño"), mutedStyle.Render("Hello, " + greeting)}
	if badge := view.Badge(m.sf.Cart()); badge != "" {
		parts = append(parts, badgeStyle.Render("cart "+badge))
	}

	tabs := make([]string, 0, len(m.categories))
	for i, c := range m.categories {
		if i == m.catIdx {
			tabs = append(tabs, activeTabStyle.Render(c))
		} else {
			tabs = append(tabs, tabStyle.Render(c))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, parts...),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

func (m *Model) renderCatalog() string {
	cv := view.Catalog(m.sf.Catalog())
	if cv.Loading {
		return mutedStyle.Render("Loading...")
	}
	if len(cv.Cards) == 0 {
		return mutedStyle.Render("No recipes to show.")
	}

	var b strings.Builder
	for i, card := range cv.Cards {
		line := fmt.Sprintf("%-40s %s", truncate(card.Name, 40), priceStyle.Render(card.Price))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d recipes · %s mode", cv.Revealed, cv.Total, cv.Mode)))
	if cv.LoadMore {
		b.WriteString("\n")
		b.WriteString(buttonStyle.Render("Load more (m)"))
	}
	return b.String()
}

func (m *Model) renderCart() string {
	cv := view.Cart(m.sf.Cart())
	if cv.Empty {
		return mutedStyle.Render("Your cart is empty.")
	}

	var b strings.Builder
	for i, l := range cv.Lines {
		line := fmt.Sprintf("%-32s x%-3d %8s %10s", truncate(l.Name, 32), l.Quantity, l.UnitPrice, l.LineTotal)
		if i == m.cartCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\nSubtotal %s\nTotal    %s", cv.Subtotal, priceStyle.Render(cv.Total)))
	return b.String()
}

func (m *Model) renderDetail() string {
	d := m.detail
	if d.Error != "" {
		return detailStyle.Render(d.Error)
	}
	var b strings.Builder
	b.WriteString(selectedStyle.Render(d.Name))
	b.WriteString("  " + priceStyle.Render(d.Price) + "\n")
	b.WriteString(mutedStyle.Render(strings.TrimSpace(d.Category+" · "+d.Area)) + "\n\n")
	for _, in := range d.Ingredients {
		b.WriteString("• " + in + "\n")
	}
	if d.Instructions != "" {
		b.WriteString("\n")
		b.WriteString(wrap(d.Instructions, m.textWidth()))
	}
	return detailStyle.Render(b.String())
}

func (m *Model) help() string {
	switch {
	case m.detail != nil:
		return "esc back · q quit"
	case m.sf.Screen() == service.ScreenCart:
		return "j/k move · +/- quantity · x remove · c catalog · q quit"
	}
	return "j/k move · m load more · a add · enter detail · tab category · s sort · c cart · q quit"
}

func (m *Model) textWidth() int {
	if m.width > 10 {
		return m.width - 6
	}
	return 74
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// wrap breaks s into lines of at most width runes on word boundaries.
func wrap(s string, width int) string {
	var b strings.Builder
	col := 0
	for _, w := range strings.Fields(s) {
		n := len([]rune(w))
		if col > 0 && col+1+n > width {
			b.WriteString("\n")
			col = 0
		}
		if col > 0 {
			b.WriteString(" ")
			col++
		}
		b.WriteString(w)
		col += n
	}
	return b.String()
}
