package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"sectionsnap/internal/config"
	"sectionsnap/internal/document"
	"sectionsnap/internal/domain"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections FILE",
	Short: "List the sections a document is split into",
	Long: `Parses the document the way the viewer does and prints one row per section
with its id, title and the elements tagged for parallax or reveal effects.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := splitTarget(args[0])
		absPath, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(config.NewConfigService(configPath(filepath.Dir(absPath))))
		if err != nil {
			return err
		}
		doc, err := document.Load(absPath, cfg.UI.SectionLevel)
		if err != nil {
			return err
		}
		return printSections(cmd.OutOrStdout(), doc)
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printSections(w io.Writer, doc *domain.Document) error {
	if len(doc.Sections) == 0 {
		_, err := fmt.Fprintf(w, "%s has no sections\n", doc.Path)
		return err
	}

	t := newTable("#", "ID", "Title", "Lines", "Effects")
	for i, s := range doc.Sections {
		t.Row(strconv.Itoa(i+1), "#"+s.ID, s.Title, strconv.Itoa(len(s.Lines)), effects(s.Elements))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func effects(elements []domain.Element) string {
	var out []string
	for _, el := range elements {
		if el.ParallaxSpeed != 0 {
			out = append(out, fmt.Sprintf("%s parallax %g", el.ID, el.ParallaxSpeed))
		}
		if el.AnimateOnScroll {
			out = append(out, el.ID+" reveal")
		}
	}
	return strings.Join(out, ", ")
}
