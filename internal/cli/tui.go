package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/duplexsheet/duplexsheet/pkg/sheet/layout"
)

// Preview styles
var (
	previewPaperStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorDim)
	previewEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// itemGlyphs label images in the page miniature, cycling when a page has more.
const itemGlyphs = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// =============================================================================
// PageModel - Interactive page browser
// =============================================================================

// PageModel is the bubbletea model for browsing packed pages.
type PageModel struct {
	Pages    []layout.Page
	Geometry layout.Geometry
	Page     int  // zero-based index of the shown page
	Back     bool // show the mirrored back side
	Width    int  // terminal width
	Height   int  // terminal height
}

// NewPageModel creates a page browser for res.
func NewPageModel(res layout.Result, g layout.Geometry) PageModel {
	return PageModel{
		Pages:    res.Pages,
		Geometry: g,
		Width:    80,
		Height:   24,
	}
}

func (m PageModel) Init() tea.Cmd {
	return nil
}

func (m PageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", "pgdown":
			if m.Page < len(m.Pages)-1 {
				m.Page++
			}
		case "left", "h", "p", "pgup":
			if m.Page > 0 {
				m.Page--
			}
		case "home", "g":
			m.Page = 0
		case "end", "G":
			m.Page = max(0, len(m.Pages)-1)
		case "b", "tab", " ":
			m.Back = !m.Back
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	}
	return m, nil
}

func (m PageModel) View() string {
	var b strings.Builder

	if len(m.Pages) == 0 {
		b.WriteString(StyleTitle.Render("No pages"))
		b.WriteString("\n")
		return b.String()
	}

	side := styleFront.Render("front")
	if m.Back {
		side = styleBack.Render("back (mirrored)")
	}
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Page %d/%d", m.Page+1, len(m.Pages))))
	b.WriteString(previewDimStyle.Render(" · "))
	b.WriteString(side)
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("←/→ page  b flip side  q quit"))
	b.WriteString("\n\n")

	page := m.Pages[m.Page]
	cols, rows := m.miniatureSize()
	grid := miniature(page, m.Geometry, m.Back, cols, rows)
	b.WriteString(previewPaperStyle.Render(strings.Join(grid, "\n")))
	b.WriteString("\n\n")

	placements := layout.Place(page, m.Geometry)
	for i, pl := range placements {
		x := pl.X
		if m.Back {
			x = pl.BackX
		}
		glyph := StyleHighlight.Render(string(itemGlyphs[i%len(itemGlyphs)]))
		b.WriteString(fmt.Sprintf("  %s %-28s %s\n", glyph, pl.Item.ID,
			previewDimStyle.Render(fmt.Sprintf("%dx%d at %d,%d", pl.Item.Width, pl.Item.Height, x, pl.Y))))
	}
	return b.String()
}

// miniatureSize fits the page into the terminal. Terminal cells are about
// twice as tall as wide, so rows are halved to keep the aspect ratio.
func (m PageModel) miniatureSize() (cols, rows int) {
	g := m.Geometry
	cols = min(max(m.Width-4, 10), 72)
	rows = max(1, cols*g.PageHeight/max(1, g.PageWidth)/2)
	if limit := m.Height - 6 - len(m.Pages[m.Page].Items()); limit >= 5 && rows > limit {
		rows = limit
		cols = max(10, rows*2*g.PageWidth/max(1, g.PageHeight))
	}
	return cols, rows
}

// miniature draws p as a cols x rows character grid. Each image is filled with
// its glyph at its front or back position; uncovered cells show the paper.
func miniature(p layout.Page, g layout.Geometry, back bool, cols, rows int) []string {
	grid := make([][]byte, rows)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(".", cols))
	}

	scale := func(v, total, cells int) int {
		return min(cells, max(0, v*cells/max(1, total)))
	}
	for i, pl := range layout.Place(p, g) {
		x := pl.X
		if back {
			x = pl.BackX
		}
		c0, c1 := scale(x, g.PageWidth, cols), scale(x+pl.Item.Width, g.PageWidth, cols)
		r0, r1 := scale(pl.Y, g.PageHeight, rows), scale(pl.Y+pl.Item.Height, g.PageHeight, rows)
		c1, r1 = max(c1, min(c0+1, cols)), max(r1, min(r0+1, rows))
		for r := r0; r < r1; r++ {
			for c := c0; c < c1; c++ {
				grid[r][c] = itemGlyphs[i%len(itemGlyphs)]
			}
		}
	}

	out := make([]string, rows)
	for r, line := range grid {
		out[r] = strings.ReplaceAll(string(line), ".", previewEmptyStyle.Render("·"))
	}
	return out
}
