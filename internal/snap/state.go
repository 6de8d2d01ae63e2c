package snap

// State is the observable navigation state. Only the scheduler writes it.
type State struct {
	CurrentSection int // last committed section, set optimistically when a transition starts
	IsAnimating    bool
	IsEnabled      bool
	PendingDelta   float64 // accumulated wheel input below the snap threshold
}

// Snapshot is a read-only view of the navigator for rendering adapters and tests.
type Snapshot struct {
	State
	TotalSections int
	Height        float64
	ContentHeight float64
	Offset        float64 // current content offset, 0 at the first section
	Progress      float64 // progress bar fill in [0,1]
	HintVisible   bool
	Fragment      string
	Inert         bool
	Destroyed     bool
}
