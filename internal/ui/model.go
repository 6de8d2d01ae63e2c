package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"sectionsnap/internal/config"
	"sectionsnap/internal/document"
	"sectionsnap/internal/domain"
	"sectionsnap/internal/eventbus"
	"sectionsnap/internal/snap"
	"sectionsnap/internal/ui/input"
	inputtypes "sectionsnap/internal/ui/input/types"
	"sectionsnap/internal/ui/views"
)

// statusTimeout is how long a footer message stays visible
const statusTimeout = 3 * time.Second

// Options configure the viewer model
type Options struct {
	// Config holds the base settings. A document's frontmatter is applied on top.
	Config *config.Config
	// Fragment is the id of the section to open at.
	Fragment string
	Bus      eventbus.EventBus
	// Pager shows text outside the screen. SetProgram installs the ov pager
	// when none is given.
	Pager Pager
	Clock clock.Clock
	// Ready prints a marker on every frame for the e2e driver.
	Ready bool
	// Load reads a document from disk. Defaults to document.Load.
	Load func(path string, sectionLevel int) (*domain.Document, error)
}

// documentLoadedMsg carries the result of reading the document again
type documentLoadedMsg struct {
	doc *domain.Document
	err error
}

// Model represents the UI state
type Model struct {
	opts Options
	base *config.Config
	cfg  *config.Config // base plus the document's frontmatter
	bus  eventbus.EventBus
	doc  *domain.Document

	page   *docPage
	screen *screen
	nav    *snap.Navigator
	frames *teaFrames

	// restored is set once the plain layout replaced the sections
	restored bool
	viewport viewport.Model

	width    int
	height   int
	dragging bool

	query   string
	matches []int

	status    string
	statusErr bool
	statusSeq int

	renderer     *views.Renderer
	help         help.Model
	helpText     *HelpRenderer
	inputHandler *input.Handler
	pager        Pager

	inPagerMode bool
	program     *tea.Program
}

// NewModel creates a viewer for doc. The navigator is built once the
// terminal size is known.
func NewModel(doc *domain.Document, opts Options) *Model {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewClock()
	}
	if opts.Load == nil {
		opts.Load = document.Load
	}

	m := &Model{
		opts:         opts,
		base:         opts.Config,
		bus:          opts.Bus,
		doc:          doc,
		renderer:     views.NewRenderer(),
		help:         help.New(),
		inputHandler: input.New(),
		pager:        opts.Pager,
	}
	m.helpText = NewHelpRenderer(m.inputHandler.KeyMap())
	m.applyConfig()
	m.frames = newTeaFrames(m.cfg.FrameInterval())
	return m
}

// SetProgram sets the program reference used to hand the terminal to the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pager == nil {
		m.pager = NewPagerOps(p)
	}
}

// Navigator returns the active navigator, nil before the first resize
func (m *Model) Navigator() *snap.Navigator {
	return m.nav
}

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.title())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case tea.KeyMsg:
		ctx := &input.ModelContext{Snapshot: m.snapshot(), Query: m.query}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)
		cmds = append(cmds, cmd)
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case frameMsg:
		m.frames.Run(time.Time(msg))

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.handleNonKeyboardMsg(msg))
	}

	cmds = append(cmds, m.frames.Tick())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case EventMsg:
		return m.handleEvent(msg.Event)

	case DocumentChangedMsg:
		level := m.base.UI.SectionLevel
		load := m.opts.Load
		return func() tea.Msg {
			doc, err := load(msg.Path, level)
			return documentLoadedMsg{doc: doc, err: err}
		}

	case documentLoadedMsg:
		if msg.err != nil {
			log.Printf("Reload failed: %v", msg.err)
			return m.setStatus(fmt.Sprintf("Reload failed: %v", msg.err), true)
		}
		return m.reload(msg.doc)

	case pagerMsg:
		if msg.err != nil {
			log.Printf("%s pager failed: %v", msg.what, msg.err)
			return m.setStatus(fmt.Sprintf("Could not open pager: %v", msg.err), true)
		}
		return nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return nil
	}
	return nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SectionChangedEvent:
		log.Printf("Section changed to %d/%d %q", e.Section+1, e.TotalSections, e.SectionID)
	case eventbus.NavigatorToggledEvent:
		if e.Enabled {
			return m.setStatus("Snapping resumed", false)
		}
		return m.setStatus("Snapping paused, press esc to resume", false)
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.QuitAction:
		return tea.Quit

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case inputtypes.ShowHelpPagerAction:
		return m.showInPager("help", m.helpText.RenderHelpContent())

	case inputtypes.NavigateAction:
		if m.restored {
			m.scrollPlain(a.Direction)
			return nil
		}
		if k, ok := navigationKeys[a.Direction]; ok && m.nav != nil {
			m.nav.Handle(snap.KeyEvent{Key: k})
		}
		return nil
	}

	if m.nav == nil || m.restored {
		return nil
	}

	switch a := action.(type) {
	case inputtypes.GoToSectionAction:
		m.nav.GoToSection(a.Index)

	case inputtypes.ToggleSnapAction:
		m.nav.Handle(snap.KeyEvent{Key: snap.KeyEscape})

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeSearch {
			return m.search(a.Text)
		}

	case inputtypes.SearchNavigateAction:
		target := nextMatch(m.matches, m.nav.State().CurrentSection, a.Direction == "next")
		if target >= 0 {
			m.nav.GoToSection(target)
		}

	case inputtypes.OpenPagerAction:
		sec := m.doc.Sections[m.nav.State().CurrentSection]
		return m.showInPager("section", strings.Join(sec.Lines, "\n"))

	case inputtypes.ReloadAction:
		path := m.doc.Path
		return func() tea.Msg { return DocumentChangedMsg{Path: path} }

	case inputtypes.DestroyAction:
		m.destroy()
	}
	return nil
}

var navigationKeys = map[string]snap.Key{
	"down":     snap.KeyArrowDown,
	"pagedown": snap.KeyPageDown,
	"up":       snap.KeyArrowUp,
	"pageup":   snap.KeyPageUp,
	"home":     snap.KeyHome,
	"end":      snap.KeyEnd,
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.restored {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	if m.nav == nil {
		return nil
	}

	notch := float64(m.cfg.UI.WheelNotchRows)
	switch {
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.nav.Handle(snap.WheelEvent{DeltaY: notch})

	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.nav.Handle(snap.WheelEvent{DeltaY: -notch})

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if i, ok := m.dotAt(msg.X, msg.Y); ok {
			m.nav.GoToSection(i)
			return nil
		}
		m.dragging = true
		m.nav.Handle(snap.TouchStartEvent{Y: float64(msg.Y)})

	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.nav.Handle(snap.TouchMoveEvent{Y: float64(msg.Y)})

	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		m.nav.Handle(snap.TouchEndEvent{})
	}
	return nil
}

// dotAt maps a click to a navigation dot. Row 0 is the title bar.
func (m *Model) dotAt(x, y int) (int, bool) {
	if !m.cfg.Navigator.EnableNavigationDots || x < m.width-views.DotColumn {
		return 0, false
	}
	total := len(m.doc.Sections)
	start := (m.sectionHeight() - total) / 2
	if start < 0 {
		start = 0
	}
	i := y - 1 - start
	if i < 0 || i >= total {
		return 0, false
	}
	return i, true
}

func (m *Model) search(query string) tea.Cmd {
	m.query = strings.TrimSpace(query)
	m.matches = sectionMatches(m.doc, m.query)
	if m.query == "" {
		return nil
	}
	if len(m.matches) == 0 {
		return m.setStatus(fmt.Sprintf("No section matches %q", m.query), true)
	}
	cur := m.nav.State().CurrentSection
	// an exact id wins over earlier substring matches
	if m.query != m.doc.Sections[cur].ID && m.nav.GoToSectionID(m.query) {
		return nil
	}
	for _, i := range m.matches {
		if i == cur {
			// already there; n moves on
			return m.setStatus(fmt.Sprintf("%d sections match %q", len(m.matches), m.query), false)
		}
	}
	m.nav.GoToSection(nextMatch(m.matches, cur, true))
	return nil
}

func (m *Model) showInPager(what, content string) tea.Cmd {
	if m.pager == nil {
		return m.setStatus("No pager available", true)
	}
	pager := m.pager
	program := m.program
	return func() tea.Msg {
		if program != nil {
			program.Send(pauseRenderingMsg{})
		}
		err := pager.ShowInPager(content)
		if program != nil {
			program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{what: what, err: err}
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// applyConfig merges the document's frontmatter into the base settings
func (m *Model) applyConfig() {
	cfg, err := m.base.ForDocument(m.doc.Frontmatter)
	if err != nil {
		log.Printf("Ignoring frontmatter settings: %v", err)
		m.status = err.Error()
		m.statusErr = true
		cfg = m.base
	}
	m.cfg = cfg
}

func (m *Model) sectionHeight() int {
	h := m.height - views.ChromeRows(m.cfg.Navigator.EnableProgress)
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) resize() {
	if m.restored {
		m.viewport.Width = m.width
		m.viewport.Height = m.height - views.ChromeRows(false)
	}
	if m.nav == nil {
		m.buildNavigator(m.opts.Fragment, 0)
		return
	}
	m.nav.Handle(snap.ResizeEvent{Height: float64(m.sectionHeight())})
}

// buildNavigator lays the document out as sections and opens it at the
// section named by fragment, or at index when the fragment is unknown.
func (m *Model) buildNavigator(fragment string, index int) {
	m.page = newDocPage(m.doc)
	m.screen = newScreen()
	m.restored = false
	m.nav = snap.New(m.page, snap.Options{
		Config:  m.cfg.SnapConfig(),
		Height:  float64(m.sectionHeight()),
		Frames:  m.frames,
		Surface: m.screen,
		Bus:     m.bus,
		Clock:   m.opts.Clock,
	})

	if m.nav.Snapshot().Inert {
		m.showPlain(fmt.Sprintf("No sections found in %s", m.title()), 0)
		return
	}

	if fragment != "" {
		if i := m.doc.SectionByID(fragment); i >= 0 {
			index = i
		} else {
			log.Printf("Unknown section #%s, starting at the top", fragment)
		}
	}
	if index > 0 {
		m.nav.JumpToSection(index)
	}
}

// reload swaps in a new version of the document, keeping the reader on the
// same section when it still exists.
func (m *Model) reload(doc *domain.Document) tea.Cmd {
	fragment, index := "", 0
	if m.nav != nil {
		s := m.nav.Snapshot()
		fragment, index = s.Fragment, s.CurrentSection
		m.nav.Destroy()
	}

	m.doc = doc
	m.applyConfig()
	m.matches = sectionMatches(doc, m.query)
	if m.height > 0 {
		m.buildNavigator(fragment, index)
	} else {
		m.nav = nil
	}

	log.Printf("Reloaded %s with %d sections", doc.Path, len(doc.Sections))
	if m.bus != nil {
		m.bus.Publish(eventbus.DocumentReloadedEvent{Path: doc.Path})
	}
	return m.setStatus("Reloaded "+filepath.Base(doc.Path), false)
}

// destroy tears the navigator down and shows the plain document
func (m *Model) destroy() {
	cur := m.nav.State().CurrentSection
	m.nav.Destroy()
	m.inputHandler.Reset()
	m.showPlain(m.page.Plain(), m.plainLine(cur))
}

func (m *Model) showPlain(content string, line int) {
	m.restored = true
	m.viewport = viewport.New(m.width, m.height-views.ChromeRows(false))
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(line)
}

// plainLine is the first line of section i in the plain layout
func (m *Model) plainLine(i int) int {
	line := 0
	for _, s := range m.doc.Sections[:i] {
		line += len(s.Lines) + 1
	}
	return line
}

func (m *Model) scrollPlain(direction string) {
	switch direction {
	case "down":
		m.viewport.LineDown(1)
	case "up":
		m.viewport.LineUp(1)
	case "pagedown":
		m.viewport.ViewDown()
	case "pageup":
		m.viewport.ViewUp()
	case "home":
		m.viewport.GotoTop()
	case "end":
		m.viewport.GotoBottom()
	}
}

func (m *Model) snapshot() snap.Snapshot {
	if m.nav == nil {
		return snap.Snapshot{Inert: true}
	}
	return m.nav.Snapshot()
}

func (m *Model) title() string {
	if m.doc.Title != "" {
		return m.doc.Title
	}
	return filepath.Base(m.doc.Path)
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	s := m.snapshot()
	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Title:         m.title(),
		Document:      filepath.Base(m.doc.Path),
		Current:       s.CurrentSection,
		Total:         s.TotalSections,
		Paused:        m.nav != nil && !m.restored && !s.IsEnabled,
		Restored:      m.restored,
		StatusMessage: m.status,
		StatusIsError: m.statusErr,
		HelpModel:     m.help,
		Ready:         m.opts.Ready,
	}

	if m.restored {
		state.RestoredContent = m.viewport.View()
	} else if m.nav != nil {
		state.Fragment = m.screen.fragment
		state.Sections = m.page.Layers(m.screen)
		state.SectionHeight = m.sectionHeight()
		state.Offset = m.screen.offset
		state.ShowDots = m.cfg.Navigator.EnableNavigationDots
		state.ActiveDot = m.screen.activeDot
		state.ShowProgress = m.cfg.Navigator.EnableProgress
		state.Progress = m.screen.progress
		state.HintVisible = m.screen.hintVisible
	}

	if m.cfg.UI.ShowHelp || m.help.ShowAll {
		state.KeyMap = m.inputHandler.KeyMap()
	}

	switch m.inputHandler.GetMode() {
	case inputtypes.ModeDestroyConfirm:
		state.ConfirmDestroy = true
	case inputtypes.ModeSearch:
		state.InputPrompt = m.inputHandler.Prompt()
		if ti := m.inputHandler.TextInput(); ti != nil {
			state.TextInput = ti.View()
		}
	}

	return m.renderer.Render(state)
}
