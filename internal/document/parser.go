// Package document loads markdown files and splits them into full-screen
// sections at headings.
package document

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"sectionsnap/internal/domain"
)

const (
	// AnimateClass marks a heading whose block fades in when its section is in view.
	AnimateClass = "animate-on-scroll"
	// ParallaxAttr carries the parallax speed of a heading.
	ParallaxAttr = "data-parallax"
	// DefaultParallaxSpeed replaces a missing, zero or unparsable speed.
	DefaultParallaxSpeed = 0.5
)

// trailing {#id .class key=value} block on a heading line
var headingAttrs = regexp.MustCompile(`\s*\{[^{}]*\}\s*$`)

// Load reads and parses the markdown file at path. Headings of level
// sectionLevel or lower start a new section.
func Load(path string, sectionLevel int) (*domain.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Parse(content, sectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	doc.Path = path
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Parse splits markdown content into sections. Text before the first section
// heading belongs to the first section. A document without section headings
// has no sections.
func Parse(content []byte, sectionLevel int) (*domain.Document, error) {
	if sectionLevel < 1 {
		sectionLevel = 1
	}

	frontmatter, body, err := extractFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
	)
	root := md.Parser().Parse(text.NewReader(body))

	lines := splitLines(body)
	doc := &domain.Document{Frontmatter: frontmatter}
	if title, ok := frontmatter["title"].(string); ok {
		doc.Title = title
	}

	var starts []int
	var headings []*ast.Heading
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if headingLine(h, body) < 0 {
			return ast.WalkSkipChildren, nil
		}
		headings = append(headings, h)
		if h.Parent() == root && h.Level <= sectionLevel {
			starts = append(starts, headingLine(h, body))
		}
		if doc.Title == "" && h.Level == 1 {
			doc.Title = nodeText(h, body)
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk AST: %w", err)
	}

	if len(starts) == 0 {
		log.Printf("document: no headings of level %d or lower, document has no sections", sectionLevel)
		return doc, nil
	}

	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		from := start
		if i == 0 {
			from = 0
		}
		doc.Sections = append(doc.Sections, domain.Section{
			Index: i,
			Lines: cleanLines(lines[from:end]),
		})
	}

	for _, h := range headings {
		line := headingLine(h, body)
		idx := sectionAt(starts, line)
		sec := &doc.Sections[idx]
		offset := line
		if idx > 0 {
			offset = line - starts[idx]
		}

		id := attrString(h, "id")
		if h.Parent() == root && h.Level <= sectionLevel && line == starts[idx] {
			sec.ID = id
			sec.Title = nodeText(h, body)
		}

		if el, ok := elementFor(h, id, offset); ok {
			sec.Elements = append(sec.Elements, el)
		}
	}

	return doc, nil
}

// extractFrontmatter extracts YAML frontmatter from the beginning of content.
// Returns the parsed frontmatter and the remaining content.
func extractFrontmatter(content []byte) (map[string]any, []byte, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return map[string]any{}, content, nil
	}

	rest := content[4:]
	// empty block
	if bytes.HasPrefix(rest, []byte("---\n")) {
		return map[string]any{}, rest[4:], nil
	}
	if bytes.Equal(rest, []byte("---")) {
		return map[string]any{}, []byte{}, nil
	}

	endIdx := bytes.Index(rest, []byte("\n---\n"))
	if endIdx == -1 {
		if bytes.HasSuffix(content, []byte("\n---")) {
			endIdx = len(content) - 4 - 4
		} else {
			return nil, nil, fmt.Errorf("unclosed frontmatter")
		}
	}

	yamlContent := content[4 : 4+endIdx]
	remaining := []byte{}
	if 4+endIdx+5 <= len(content) {
		remaining = content[4+endIdx+5:]
	}

	fm := map[string]any{}
	if err := yaml.Unmarshal(yamlContent, &fm); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if fm == nil {
		fm = map[string]any{}
	}
	return fm, remaining, nil
}

func splitLines(body []byte) []string {
	s := strings.TrimRight(string(body), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// cleanLines strips heading attribute blocks and trailing blank lines.
func cleanLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "#") {
			l = headingAttrs.ReplaceAllString(l, "")
		}
		out[i] = l
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out
}

// headingLine returns the 0-based source line of a heading, or -1 for an
// empty heading.
func headingLine(h *ast.Heading, source []byte) int {
	segs := h.Lines()
	if segs.Len() == 0 {
		return -1
	}
	return bytes.Count(source[:segs.At(0).Start], []byte("\n"))
}

func sectionAt(starts []int, line int) int {
	idx := 0
	for i, s := range starts {
		if line >= s {
			idx = i
		}
	}
	return idx
}

// elementFor turns a heading tagged with the animate class or a parallax
// speed into an element.
func elementFor(h *ast.Heading, id string, line int) (domain.Element, bool) {
	el := domain.Element{ID: id, Line: line}
	tagged := false

	if class := attrString(h, "class"); class != "" {
		for _, c := range strings.Fields(class) {
			if c == AnimateClass {
				el.AnimateOnScroll = true
				tagged = true
			}
		}
	}

	if v, ok := h.AttributeString(ParallaxAttr); ok {
		el.ParallaxSpeed = parallaxSpeed(v)
		tagged = true
	}

	return el, tagged
}

func parallaxSpeed(v any) float64 {
	var speed float64
	switch val := v.(type) {
	case float64:
		speed = val
	case []byte:
		if f, err := strconv.ParseFloat(string(val), 64); err == nil {
			speed = f
		}
	}
	if speed == 0 {
		return DefaultParallaxSpeed
	}
	return speed
}

func attrString(n ast.Node, name string) string {
	v, ok := n.AttributeString(name)
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case []byte:
		return string(val)
	case string:
		return val
	}
	return ""
}

// nodeText concatenates the text content of n.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
