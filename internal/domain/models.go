package domain

// Document represents a markdown document split into full-screen sections
type Document struct {
	Path        string
	Title       string
	Frontmatter map[string]any
	Sections    []Section
}

// Section represents one full-screen block of a document
type Section struct {
	Index    int
	ID       string // fragment identifier, unique within the document
	Title    string
	Lines    []string // rendered body lines, heading included
	Elements []Element
}

// Element represents a tagged block inside a section
type Element struct {
	ID              string
	Line            int     // line offset relative to the section start
	ParallaxSpeed   float64 // 0 when the element is not tagged for parallax
	AnimateOnScroll bool
}

// SectionByID returns the index of the section with the given id, or -1
func (d *Document) SectionByID(id string) int {
	for i, s := range d.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// SectionIDs returns the identifiers of all sections in order
func (d *Document) SectionIDs() []string {
	ids := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		ids[i] = s.ID
	}
	return ids
}
