package viz

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/flocksim/internal/config"
	"github.com/san-kum/flocksim/internal/experiment"
	"github.com/san-kum/flocksim/internal/export"
	"github.com/san-kum/flocksim/internal/logging"
	"github.com/san-kum/flocksim/internal/metrics"
	"github.com/san-kum/flocksim/internal/sim"
)

const (
	historyCapacity = 600
	svgScale        = 10
)

// ErrArenaTooLarge reports fixed arena dimensions that do not fit the terminal.
var ErrArenaTooLarge = errors.New("viz: arena does not fit the terminal")

type TickMsg time.Time

// Model owns the world and everything the view needs between frames. It is
// only touched from Bubble Tea's update goroutine.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	world *sim.World
	queue *sim.Queue
	grid  *Grid
	snap  sim.Snapshot

	budget   time.Duration
	lastTick time.Time

	theme     Theme
	styles    Styles
	paused    bool
	showHelp  bool
	showPanel bool
	notice    string

	polarization []float64
	speed        []float64

	width, height int
	err           error
}

func NewModel(cfg *config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	theme := GetTheme(cfg.Theme)
	return Model{
		cfg:          cfg,
		logger:       logger,
		queue:        sim.NewQueue(sim.DefaultQueueSize),
		budget:       cfg.TickDuration(),
		theme:        theme,
		styles:       NewStyles(theme),
		polarization: make([]float64, 0, historyCapacity),
		speed:        make([]float64, 0, historyCapacity),
	}
}

// Init does nothing; the world is built on the first WindowSizeMsg, which
// also starts the tick loop.
func (m Model) Init() tea.Cmd {
	return nil
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.world != nil {
			return m, nil
		}
		if err := m.build(msg.Width, msg.Height); err != nil {
			m.err = err
			m.logger.Error("build world", "error", err)
			return m, tea.Quit
		}
		return m, tick(0)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		return m.onTick(time.Time(msg))
	}
	return m, nil
}

// build creates the world for a cols x rows terminal and seeds it from the
// config. It runs once; the arena never changes afterwards.
func (m *Model) build(cols, rows int) error {
	arena, err := m.cfg.ArenaFor(cols, rows)
	if err != nil {
		return fmt.Errorf("terminal %dx%d: %w", cols, rows, err)
	}
	if arena.Width > float64(cols) || arena.Height > float64(rows) {
		return fmt.Errorf("%w: arena %vx%v, terminal %dx%d",
			ErrArenaTooLarge, arena.Width, arena.Height, cols, rows)
	}

	seed := m.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	exp, err := experiment.New(m.cfg, arena)
	if err != nil {
		return err
	}
	w, err := exp.Build(seed)
	if err != nil {
		return err
	}

	m.world = w
	m.grid = GridFor(arena)
	m.snap = w.Snapshot()
	m.lastTick = time.Now()

	m.logger.Info("world ready",
		"arena", fmt.Sprintf("%vx%v", arena.Width, arena.Height),
		"seed", seed,
		"agents", w.AgentCount(),
		"pois", w.POICount())
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.world == nil {
		if cmd, ok := KeyToCommand(msg); ok && cmd.Kind == sim.CmdQuit {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case " ":
		m.paused = !m.paused
		m.logger.Debug("pause", "paused", m.paused)
		return m, nil
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "g":
		m.showPanel = !m.showPanel
		return m, nil
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = NewStyles(m.theme)
		return m, nil
	case "s":
		m.saveSVG()
		return m, nil
	}

	cmd, ok := KeyToCommand(msg)
	if !ok {
		return m, nil
	}
	if !m.queue.Push(cmd) {
		m.logger.Debug("command dropped", "command", cmd, "dropped", m.queue.Dropped())
		return m, nil
	}
	m.logger.Debug("command queued", "command", cmd, "pending", m.queue.Len())
	return m, nil
}

// onTick runs one engine tick and schedules the next one so that the tick
// lasts the configured budget. While paused, queued commands still apply one
// per tick but agents do not move.
func (m Model) onTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.world == nil {
		return m, nil
	}
	start := time.Now()
	elapsed := now.Sub(m.lastTick)
	m.lastTick = now

	var quit bool
	if m.paused {
		quit = m.world.ApplyNext(m.queue)
		m.snap = m.world.Snapshot()
	} else {
		m.snap, quit = m.world.Tick(m.queue, elapsed)
		m.record(m.snap)
	}

	if quit {
		m.logger.Info("quit",
			"ticks", m.snap.Tick,
			"elapsed", m.snap.Elapsed.Round(time.Millisecond),
			"dropped", m.queue.Dropped())
		return m, tea.Quit
	}
	return m, tick(sim.NextDelay(start, time.Now(), m.budget))
}

func (m *Model) record(snap sim.Snapshot) {
	m.polarization = appendBounded(m.polarization, metrics.PolarizationOf(snap))
	m.speed = appendBounded(m.speed, metrics.MeanSpeedOf(snap))
}

func appendBounded(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m *Model) saveSVG() {
	path := fmt.Sprintf("flocksim-%d.svg", m.snap.Tick)
	if err := os.WriteFile(path, []byte(export.SnapshotToSVG(m.snap, svgScale)), 0644); err != nil {
		m.notice = "save failed: " + err.Error()
		m.logger.Error("save svg", "path", path, "error", err)
		return
	}
	m.notice = "saved " + path
	m.logger.Info("saved svg", "path", path)
}

// HeaderLine is the status line above the grid.
func HeaderLine(snap sim.Snapshot) string {
	header := fmt.Sprintf("Time: %.1fs (Esc) | Boids: %d (+ Enter, - Backspace)",
		snap.Elapsed.Seconds(), snap.AgentCount)

	poi, ok := snap.SelectedPOI()
	if !ok {
		return header + " | POI: 0/0 (+ Insert, - Delete)"
	}
	polarity := "Repel"
	if poi.Attract {
		polarity = "Attract"
	}
	return fmt.Sprintf("%s - POI: (0..9 Select) %d/%d (+ Insert, - Delete) %s (Tab)",
		header, snap.Selected+1, len(snap.POIs), polarity)
}

func (m Model) View() string {
	if m.err != nil {
		return "error: " + m.err.Error() + "\n"
	}
	if m.world == nil {
		return "waiting for terminal size...\n"
	}

	var s strings.Builder
	s.WriteString(m.styles.Header.Render(HeaderLine(m.snap)))
	if m.paused {
		s.WriteString(" " + m.styles.Paused.Render("PAUSED"))
	}
	s.WriteString("\n")

	m.grid.Draw(m.snap)
	body := m.grid.Render(m.styles)
	if m.showPanel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.panel())
	}
	s.WriteString(body)

	if m.notice != "" {
		s.WriteString("\n" + m.styles.Notice.Render(m.notice))
	}

	if m.showHelp {
		return helpText + "\n" + s.String()
	}
	return s.String()
}

func (m Model) panel() string {
	st := m.styles
	var s strings.Builder

	status := st.Status.Render("RUNNING")
	if m.paused {
		status = st.Paused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.polarization) > 1 {
		chart := asciigraph.Plot(m.polarization,
			asciigraph.Height(6),
			asciigraph.Width(30),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("Polarization"))
		s.WriteString(st.Graph.Render(chart) + "\n")
	}

	pol := last(m.polarization)
	row := func(label, value string) {
		s.WriteString(st.MetricLabel.Render(label) + st.MetricValue.Render(value) + "\n")
	}
	row("Order", st.ProgressBar(pol, 16)+fmt.Sprintf(" %.2f", pol))
	row("Speed", st.Sparkline(m.speed, 16)+fmt.Sprintf(" %.2f", last(m.speed)))
	row("Spacing", fmt.Sprintf("%.2f", metrics.NearestNeighborOf(m.snap)))
	row("On walls", fmt.Sprintf("%.0f%%", 100*metrics.WallContactsOf(m.snap)))
	row("Tick", fmt.Sprintf("%d", m.snap.Tick))
	row("Queued", fmt.Sprintf("%d (%d dropped)", m.queue.Len(), m.queue.Dropped()))
	row("Theme", m.theme.Name)

	s.WriteString("\n" + st.KeyHint.Render("SP:Pause T:Theme S:Save ?:Help"))
	return st.Panel.Render(s.String())
}

func last(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

const helpText = `╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Arrows     - Move selected POI      ║
║  1-9, 0     - Select POI 1-10        ║
║  Tab        - Attract / Repel        ║
║  Insert, +  - Add POI                ║
║  Delete, -  - Remove POI             ║
║  Enter      - Spawn boid             ║
║  Backspace  - Remove boid            ║
║  Space      - Pause/Resume           ║
║  G          - Metrics panel          ║
║  T          - Cycle themes           ║
║  S          - Save frame as SVG      ║
║  ?          - Toggle this help       ║
║  Esc, Q     - Quit                   ║
╚══════════════════════════════════════╝`

// Run starts the interactive view on the alternate screen and blocks until
// the user quits.
func Run(cfg *config.Config, logger *slog.Logger) error {
	p := tea.NewProgram(NewModel(cfg, logger), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
