package tui

import (
	"pdfmerge-cli/internal/sortable"
)

const (
	cardHeight = 2
	headerRows = 2
	// status, progress, help
	footerRows = 3

	defaultWidth  = 80
	defaultHeight = 24
)

// rowView is one rendered card. Bounds are screen rows as of the render that
// produced it.
type rowView struct {
	key    string
	index  int
	bounds sortable.Bounds
}

func (v rowView) Key() string              { return v.key }
func (v rowView) Index() int               { return v.index }
func (v rowView) Bounds() sortable.Bounds { return v.bounds }

// layout maps list positions to screen rows. Offsets in tops are relative to
// the top of the scrollable content; placeholder rows are already included.
type layout struct {
	listTop    int
	listHeight int
	scroll     int

	tops     []int
	phTop    int
	phHeight int
	content  int
}

func computeLayout(n, height, scroll, phSlot, phHeight int, phOK bool) layout {
	if height <= 0 {
		height = defaultHeight
	}
	lay := layout{
		listTop:    headerRows,
		listHeight: height - headerRows - footerRows,
		phTop:      -1,
		tops:       make([]int, n),
	}
	if lay.listHeight < cardHeight {
		lay.listHeight = cardHeight
	}
	if phHeight <= 0 {
		phHeight = cardHeight
	}

	y := 0
	for i := 0; i < n; i++ {
		if phOK && phSlot == i {
			lay.phTop, lay.phHeight = y, phHeight
			y += phHeight
		}
		lay.tops[i] = y
		y += cardHeight
	}
	if phOK && phSlot >= n {
		lay.phTop, lay.phHeight = y, phHeight
		y += phHeight
	}
	lay.content = y
	lay.scroll = clampScroll(scroll, lay.content, lay.listHeight)
	return lay
}

func clampScroll(scroll, content, visible int) int {
	maxScroll := content - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

func (l layout) screenTop(i int) int {
	return l.listTop + l.tops[i] - l.scroll
}

func (l layout) inList(y int) bool {
	return y >= l.listTop && y < l.listTop+l.listHeight
}

func (l layout) views(keys []string) []sortable.View {
	out := make([]sortable.View, 0, len(keys))
	for i, k := range keys {
		out = append(out, rowView{
			key:    k,
			index:  i,
			bounds: sortable.Bounds{Top: l.screenTop(i), Height: cardHeight},
		})
	}
	return out
}

// ensureVisible returns a scroll offset that shows card i in full.
func (l layout) ensureVisible(i int) int {
	if i < 0 || i >= len(l.tops) {
		return l.scroll
	}
	top := l.tops[i]
	bottom := top + cardHeight
	scroll := l.scroll
	if top < scroll {
		scroll = top
	}
	if bottom > scroll+l.listHeight {
		scroll = bottom - l.listHeight
	}
	return clampScroll(scroll, l.content, l.listHeight)
}
