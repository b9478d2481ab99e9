package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pdfmerge-cli/internal/model"
	"pdfmerge-cli/internal/order"
	"pdfmerge-cli/internal/pdf"
	"pdfmerge-cli/internal/sortable"
	"pdfmerge-cli/internal/store"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/rs/zerolog"
)

const (
	msgOnlyPDF       = "only PDF files are allowed"
	msgTooFewToMerge = "Select at least 2 PDF files to merge"
)

type appModel struct {
	log zerolog.Logger

	cfg     *store.Config
	history *store.History
	merger  *pdf.Merger

	width  int
	height int

	list  *order.List
	drag  *sortable.Controller
	lay   layout
	views []cardView

	selected int
	scroll   int

	// pressed is set between a left press on a card and either the first
	// motion (which starts a drag) or the release.
	pressed    *pressState
	keys       keyMap
	help       help.Model
	modal      modalKind
	confirm    confirmModalFocus
	picker     filepicker.Model
	pickerDir  string
	modalBody  string
	modalTitle string

	merging     bool
	mergeRun    int
	mergePaths  []string
	mergeOut    string
	mergeStep   int
	mergeCtx    context.Context
	mergeCancel context.CancelFunc
	progress    progress.Model

	status     string
	statusKind statusKind
	statusSeq  int

	// persistSession mirrors config.restoreSession.
	persistSession bool
}

type pressState struct {
	key   string
	index int
	y     int
}

// cardView pairs the rendered view with its item for drawing.
type cardView struct {
	rowView
	item model.Item
}

func newAppModel(opts Options) appModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = &store.Config{}
	}
	m := appModel{
		log:            opts.Logger,
		cfg:            cfg,
		history:        opts.History,
		merger:         opts.Merger,
		list:           &order.List{},
		drag:           sortable.New(sortable.Options{Logger: opts.Logger}),
		keys:           defaultKeyMap(),
		help:           help.New(),
		progress:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		selected:       -1,
		persistSession: cfg.RestoreSession,
	}
	if m.merger == nil {
		m.merger = pdf.NewMerger(opts.Logger)
	}

	paths := opts.Paths
	if len(paths) == 0 && cfg.RestoreSession {
		if sess, err := store.LoadSession(); err == nil {
			paths = sess.Paths
		} else {
			m.log.Warn().Err(err).Msg("tui: load session")
		}
	}
	if len(paths) > 0 {
		m.addPaths(paths)
	}
	m.relayout()
	return m
}

// addPaths inspects and appends files in order. Non-PDF inputs set an error
// status; duplicates are skipped silently.
func (m *appModel) addPaths(paths []string) {
	var rejected, unreadable []string
	added := 0
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		it, err := pdf.Inspect(p)
		if err != nil {
			if errors.Is(err, pdf.ErrNotPDF) {
				rejected = append(rejected, p)
			} else {
				unreadable = append(unreadable, p)
			}
			m.log.Debug().Err(err).Str("path", p).Msg("tui: add rejected")
			continue
		}
		if err := m.list.Append(it); err != nil {
			if errors.Is(err, order.ErrDuplicateItem) {
				continue
			}
			m.log.Warn().Err(err).Str("path", p).Msg("tui: append")
			continue
		}
		added++
	}
	if added > 0 && m.selected < 0 {
		m.selected = 0
	}

	switch {
	case len(rejected) > 0:
		m.setStatus(statusError, msgOnlyPDF)
	case len(unreadable) > 0:
		m.setStatus(statusError, fmt.Sprintf("could not read %s", unreadable[0]))
	}
	if added > 0 {
		m.saveSession()
	}
}

func (m *appModel) removeSelected() {
	if m.selected < 0 || m.selected >= m.list.Len() {
		return
	}
	it, err := m.list.RemoveAt(m.selected)
	if err != nil {
		m.log.Warn().Err(err).Msg("tui: remove")
		return
	}
	m.log.Debug().Str("key", it.Key).Msg("tui: removed")
	if m.selected >= m.list.Len() {
		m.selected = m.list.Len() - 1
	}
	m.saveSession()
}

func (m *appModel) clearAll() {
	m.list.Clear()
	m.selected = -1
	m.scroll = 0
	m.clearStatus()
	m.saveSession()
}

// moveSelected shifts the selected card by delta positions.
func (m *appModel) moveSelected(delta int) {
	from := m.selected
	to := from + delta
	if from < 0 || to < 0 || to >= m.list.Len() {
		return
	}
	if err := m.list.Move(from, to); err != nil {
		m.log.Warn().Err(err).Msg("tui: move")
		return
	}
	m.selected = to
	m.saveSession()
}

func (m *appModel) applyMove(mv sortable.MoveInstruction) {
	if err := sortable.Apply(m.list, mv); err != nil {
		m.log.Warn().Err(err).Int("old", mv.OldIndex).Int("new", mv.NewIndex).Msg("tui: apply drop")
		return
	}
	m.selected = mv.NewIndex
	m.saveSession()
}

func (m *appModel) saveSession() {
	if !m.persistSession {
		return
	}
	if err := store.SaveSession(m.list.Paths()); err != nil {
		m.log.Warn().Err(err).Msg("tui: save session")
	}
}

func (m *appModel) setStatus(kind statusKind, text string) {
	m.statusSeq++
	m.status = text
	m.statusKind = kind
}

func (m *appModel) clearStatus() {
	m.statusSeq++
	m.status = ""
	m.statusKind = statusInfo
}

// relayout recomputes card positions and hands fresh views to the drag
// controller. Call it after anything that changes the list, the size, the
// scroll offset or the placeholder.
func (m *appModel) relayout() {
	slot, phH, ok := m.drag.Placeholder()
	m.lay = computeLayout(m.list.Len(), m.height, m.scroll, slot, phH, ok)
	m.scroll = m.lay.scroll

	items := m.list.Items()
	m.views = make([]cardView, 0, len(items))
	views := make([]sortable.View, 0, len(items))
	for i, v := range m.lay.views(m.list.Keys()) {
		rv := v.(rowView)
		m.views = append(m.views, cardView{rowView: rv, item: items[i]})
		views = append(views, rv)
	}
	m.drag.Attach(views)
}

func (m *appModel) selectIndex(i int) {
	n := m.list.Len()
	if n == 0 {
		m.selected = -1
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	m.selected = i
	m.relayout()
	m.scroll = m.lay.ensureVisible(i)
}
