package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// GoToSectionAction jumps to a section by position
type GoToSectionAction struct {
	Index int
}

func (a GoToSectionAction) Type() string { return "goto_section" }

// ToggleSnapAction pauses or resumes scroll snapping
type ToggleSnapAction struct{}

func (a ToggleSnapAction) Type() string { return "toggle_snap" }

// DestroyAction tears the navigator down and restores the plain document
type DestroyAction struct{}

func (a DestroyAction) Type() string { return "destroy" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// SearchNavigateAction moves between search matches
type SearchNavigateAction struct {
	Direction string // "next" or "prev"
}

func (a SearchNavigateAction) Type() string { return "search_navigate" }

// View actions
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ShowHelpPagerAction struct{}

func (a ShowHelpPagerAction) Type() string { return "show_help_pager" }

type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
