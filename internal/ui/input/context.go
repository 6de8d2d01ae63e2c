package input

import "sectionsnap/internal/snap"

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Snapshot snap.Snapshot
	Query    string
}

// CurrentSection returns the committed section index
func (c *ModelContext) CurrentSection() int {
	return c.Snapshot.CurrentSection
}

// TotalSections returns the number of sections being navigated
func (c *ModelContext) TotalSections() int {
	return c.Snapshot.TotalSections
}

// SnappingEnabled reports whether the navigator accepts input
func (c *ModelContext) SnappingEnabled() bool {
	return c.Snapshot.IsEnabled
}

// Destroyed reports whether the plain layout has been restored. An inert
// navigator counts as destroyed since there is nothing to snap between.
func (c *ModelContext) Destroyed() bool {
	return c.Snapshot.Destroyed || c.Snapshot.Inert
}

// SearchQuery returns the last submitted section search
func (c *ModelContext) SearchQuery() string {
	return c.Query
}
