package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sammiviz/sammi/internal/usecase"
)

type screen int

const (
	screenHome screen = iota
	screenPlots
	screenMaps
	screenModels
	screenModelPreview
	screenInit
)

const (
	menuPlots  = "Plots"
	menuMaps   = "Maps"
	menuModels = "Models"
	menuInit   = "Init Workspace"
	menuQuit   = "Quit"
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

// refItem is an entry of the plots, maps or models lists.
type refItem struct {
	title string
	desc  string
	key   string
}

func (r refItem) Title() string       { return r.title }
func (r refItem) Description() string { return r.desc }
func (r refItem) FilterValue() string { return r.title }

type model struct {
	theme Theme
	deps  Deps

	scr   screen
	menu  list.Model
	items list.Model

	width  int
	height int

	workspaceFound bool
	workspaceRoot  string
	cwd            string

	preview usecase.ModelReport
	running bool
	toast   string

	renderCh chan renderDoneMsg
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	items := []list.Item{
		menuItem{menuPlots, "Render a plot spec into a map and open it"},
		menuItem{menuMaps, "Open a generated map"},
		menuItem{menuModels, "Browse models and their subsystems"},
		menuItem{menuInit, "Create sammi.yaml, a toy model and demo plots here"},
		menuItem{menuQuit, "Exit sammi"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "sammi"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sub := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	sub.SetShowStatusBar(false)
	sub.SetFilteringEnabled(true)
	sub.SetShowHelp(false)

	m := model{
		theme: t,
		deps:  deps,
		scr:   screenHome,
		menu:  l,
		items: sub,
	}

	wd, err := os.Getwd()
	if err == nil {
		m.cwd = wd
		if deps.WorkspaceLocator != nil {
			root, findErr := deps.WorkspaceLocator.FindRoot(wd)
			if findErr == nil {
				m.workspaceFound = true
				m.workspaceRoot = root
			}
		}
	}

	return m
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-10)
		m.items.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if msg.cwd != "" {
			m.cwd = msg.cwd
		}
		return m, nil

	case initWorkspaceDoneMsg:
		m.running = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace ready at " + msg.root
		m.scr = screenHome
		return m, cmdRefreshWorkspace(m.deps)

	case plotsLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, refItem{title: r.Name, desc: relPath(msg.root, r.Path), key: r.Path})
		}
		m.items.SetItems(items)
		return m, nil

	case mapsLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.recs))
		for _, r := range msg.recs {
			items = append(items, refItem{title: r.HTMLName, desc: mapDescription(r), key: r.HTMLName})
		}
		m.items.SetItems(items)
		return m, nil

	case modelsLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, refItem{title: r.Name, desc: relPath(msg.root, r.Path), key: r.Path})
		}
		m.items.SetItems(items)
		return m, nil

	case modelPreviewMsg:
		m.running = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.preview = msg.report
		m.scr = screenModelPreview
		return m, nil

	case renderDoneMsg:
		m.running = false
		m.renderCh = nil
		if msg.err != nil && msg.rec.Path == "" {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Wrote " + relPath(m.workspaceRoot, msg.rec.Path)
		if msg.err != nil {
			m.toast += " (" + userMessage(msg.err) + ")"
		}
		return m, nil

	case openDoneMsg:
		m.running = false
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Opened " + msg.name
		return m, nil

	case tea.KeyMsg:
		if m.scr != screenHome && m.items.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			return m.home(), nil

		case "esc", "b":
			switch m.scr {
			case screenHome:
			case screenModelPreview:
				m.scr = screenModels
				return m, nil
			default:
				return m.home(), nil
			}

		case "r":
			if m.scr == screenMaps && m.workspaceFound {
				return m, cmdLoadMaps(m.deps, m.workspaceRoot)
			}

		case "y":
			if m.scr == screenInit && !m.running {
				m.running = true
				m.toast = "Creating workspace..."
				return m, cmdInitWorkspaceHere(m.deps, m.cwd)
			}

		case "enter":
			return m.enter()
		}
	}

	var cmd tea.Cmd
	switch m.scr {
	case screenHome:
		m.menu, cmd = m.menu.Update(msg)
	case screenPlots, screenMaps, screenModels:
		m.items, cmd = m.items.Update(msg)
	}
	return m, cmd
}

func (m model) home() model {
	m.scr = screenHome
	m.toast = ""
	m.items.ResetFilter()
	return m
}

func (m model) enter() (tea.Model, tea.Cmd) {
	switch m.scr {
	case screenHome:
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.toast = ""
		switch it.title {
		case menuQuit:
			return m, tea.Quit
		case menuInit:
			m.scr = screenInit
			return m, nil
		}
		if !m.workspaceFound {
			m.toast = "No workspace found (use Init Workspace)"
			return m, nil
		}
		m.items.SetItems(nil)
		m.items.Title = it.title
		switch it.title {
		case menuPlots:
			m.scr = screenPlots
			return m, cmdLoadPlots(m.deps, m.workspaceRoot)
		case menuMaps:
			m.scr = screenMaps
			return m, cmdLoadMaps(m.deps, m.workspaceRoot)
		case menuModels:
			m.scr = screenModels
			return m, cmdLoadModels(m.deps, m.workspaceRoot)
		}
		return m, nil

	case screenPlots:
		it, ok := m.items.SelectedItem().(refItem)
		if !ok || m.running {
			return m, nil
		}
		m.running = true
		m.toast = "Rendering " + it.title + "..."
		ch, cmd := startRenderAsync(m.deps, m.workspaceRoot, it.key)
		m.renderCh = ch
		return m, cmd

	case screenMaps:
		it, ok := m.items.SelectedItem().(refItem)
		if !ok || m.running {
			return m, nil
		}
		m.running = true
		return m, cmdOpenMap(m.deps, m.workspaceRoot, it.key)

	case screenModels:
		it, ok := m.items.SelectedItem().(refItem)
		if !ok || m.running {
			return m, nil
		}
		m.running = true
		m.toast = "Loading " + it.title + "..."
		return m, cmdPreviewModel(m.deps, m.workspaceRoot, it.key)
	}
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("sammi") + "\n" +
		m.theme.Subtitle.Render("Metabolic maps for the SAMMI browser") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Card.Render(
			"⚠ No workspace found.\n\nCreate one with Init Workspace.",
		)
	}

	var toast string
	if m.toast != "" {
		toast = "\n" + m.theme.Toast.Render(clampString(m.toast, max(m.width-8, 40)))
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(m.menu.View()) + toast + "\n" + help)

	case screenPlots, screenMaps, screenModels:
		help := "enter render+open • / search • esc back"
		switch m.scr {
		case screenMaps:
			help = "enter open • r reload • / search • esc back"
		case screenModels:
			help = "enter inspect • / search • esc back"
		}
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(m.items.View()) + toast + "\n" + m.theme.Help.Render(help))

	case screenModelPreview:
		card := m.theme.Card.Render(renderModelReport(m.preview) + "\n" + m.theme.Help.Render("esc back • q home"))
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + card)

	case screenInit:
		body := fmt.Sprintf("%s\n\nCreate a sammi workspace in\n  %s\n\nExisting files are kept.\n\n%s",
			m.theme.Title.Render(menuInit),
			m.cwd,
			m.theme.Help.Render("y create • esc back"),
		)
		return wrap.Render(header + "\n" + m.theme.Card.Render(body) + toast)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

func relPath(root, p string) string {
	if root == "" {
		return p
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
