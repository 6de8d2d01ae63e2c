package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sectionsnap/internal/ui/input/types"
)

type NormalMode struct {
	keys KeyMap
}

func NewNormalMode(keys KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true

	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: navDirection(msg, "down")}}, true

	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: navDirection(msg, "up")}}, true

	case key.Matches(msg, m.keys.First):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case key.Matches(msg, m.keys.Last):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, m.keys.HelpPager):
		return []types.Action{types.ShowHelpPagerAction{}}, true
	}

	// Everything below needs a live navigator
	if ctx.Destroyed() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Jump):
		index := int(msg.String()[0]-'1')
		if index >= ctx.TotalSections() {
			return nil, false
		}
		return []types.Action{types.GoToSectionAction{Index: index}}, true

	case key.Matches(msg, m.keys.ToggleSnap):
		return []types.Action{types.ToggleSnapAction{}}, true

	case key.Matches(msg, m.keys.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case key.Matches(msg, m.keys.NextMatch):
		if ctx.SearchQuery() != "" {
			return []types.Action{types.SearchNavigateAction{Direction: "next"}}, true
		}
		return nil, false

	case key.Matches(msg, m.keys.PrevMatch):
		if ctx.SearchQuery() != "" {
			return []types.Action{types.SearchNavigateAction{Direction: "prev"}}, true
		}
		return nil, false

	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.OpenPagerAction{}}, true

	case key.Matches(msg, m.keys.Reload):
		return []types.Action{types.ReloadAction{}}, true

	case key.Matches(msg, m.keys.Destroy):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeDestroyConfirm}}, true
	}

	return nil, false
}

// navDirection keeps page keys distinguishable so the restored layout can
// scroll by a page instead of a line.
func navDirection(msg tea.KeyMsg, dir string) string {
	switch msg.Type {
	case tea.KeyPgDown, tea.KeyPgUp, tea.KeySpace:
		return "page" + dir
	}
	return dir
}
