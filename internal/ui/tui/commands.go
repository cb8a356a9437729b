package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sammiviz/sammi/internal/app/workspace"
	"github.com/sammiviz/sammi/internal/usecase"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := usecase.NewInitWorkspace(deps.WorkspaceInitializer).Execute(root, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func openWorkspace(deps Deps, root string) (*workspace.Workspace, error) {
	opts := []workspace.Option{workspace.WithLogger(deps.Logger)}
	if deps.Opener != nil {
		opts = append(opts, workspace.WithOpener(deps.Opener))
	}
	return workspace.Open(root, opts...)
}

func cmdLoadPlots(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		ws, err := openWorkspace(deps, root)
		if err != nil {
			return plotsLoadedMsg{root: root, err: err}
		}
		refs, err := ws.Plots.ListPlots(root)
		return plotsLoadedMsg{root: root, refs: refs, err: err}
	}
}

func cmdLoadMaps(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		ws, err := openWorkspace(deps, root)
		if err != nil {
			return mapsLoadedMsg{root: root, err: err}
		}
		recs, err := ws.Maps.ListMaps()
		return mapsLoadedMsg{root: root, recs: recs, err: err}
	}
}

func cmdLoadModels(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		ws, err := openWorkspace(deps, root)
		if err != nil {
			return modelsLoadedMsg{root: root, err: err}
		}
		refs, err := ws.Models.ListModels(root)
		return modelsLoadedMsg{root: root, refs: refs, err: err}
	}
}

func cmdPreviewModel(deps Deps, root, path string) tea.Cmd {
	return func() tea.Msg {
		ws, err := openWorkspace(deps, root)
		if err != nil {
			return modelPreviewMsg{path: path, err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		rep, err := usecase.NewInspectModel(ws.Models).Execute(ctx, path, "subsystem")
		return modelPreviewMsg{path: path, report: rep, err: err}
	}
}

func cmdOpenMap(deps Deps, root, htmlName string) tea.Cmd {
	return func() tea.Msg {
		ws, err := openWorkspace(deps, root)
		if err != nil {
			return openDoneMsg{name: htmlName, err: err}
		}
		path, err := usecase.NewOpenMap(ws.Maps, ws.Opener).Execute(context.Background(), htmlName)
		return openDoneMsg{name: htmlName, path: path, err: err}
	}
}

func listenRender(ch <-chan renderDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return renderDoneMsg{err: errors.New("render channel closed")}
		}
		return msg
	}
}

// startRenderAsync renders a plot spec in the background and opens the page
// when the plot spec asks for it.
func startRenderAsync(deps Deps, root, plotPath string) (chan renderDoneMsg, tea.Cmd) {
	ch := make(chan renderDoneMsg, 1)

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("tui.render.start", "workspace", root, "plot_path", plotPath, "debug", deps.Debug)

		ws, err := openWorkspace(deps, root)
		if err != nil {
			log.Error("tui.render.load_config.failed", "err", err)
			ch <- renderDoneMsg{plot: plotPath, err: err}
			return
		}

		spec, err := ws.LoadPlot(plotPath)
		if err != nil {
			ch <- renderDoneMsg{plot: plotPath, err: err}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		rec, err := ws.RenderSpec(ctx, spec, nil)
		if err != nil {
			log.Error("tui.render.failed", "plot", spec.Name, "err", err)
		} else {
			log.Info("tui.render.ok", "plot", spec.Name, "html", rec.HTMLName)
		}
		ch <- renderDoneMsg{plot: spec.Name, rec: rec, err: err}
	}()

	return ch, listenRender(ch)
}
