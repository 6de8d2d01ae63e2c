package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"sectionsnap/internal/ui/input/types"
)

type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Find section: ", ti),
	}
}
