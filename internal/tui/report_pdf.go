package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/christophertwo/aella/internal/models"
)

// GenerateProjectReport writes a PDF listing projects to path. query, when
// set, is printed as the filter the list was produced with.
func GenerateProjectReport(path, query string, projects []models.Project, generated time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Aella project report", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Project Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Generated "+generated.Format("02/01/2006 15:04"))
	pdf.Ln(6)
	if query != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Search: %s", query)))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	counts := make(map[models.ProjectStatus]int)
	for _, p := range projects {
		counts[p.Status]++
	}

	if len(projects) == 0 {
		pdf.SetFont("Arial", "I", 12)
		pdf.Cell(0, 8, "No projects.")
		pdf.Ln(8)
	}
	for _, p := range projects {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, tr(p.Name))
		pdf.Ln(7)

		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, tr(fmt.Sprintf("%s  |  created %s  |  team: %s", p.Status.Label(), p.CreationDate(), FormatMembers(p.TeamMembers, 0))))
		pdf.Ln(6)
		if p.Description != "" {
			pdf.MultiCell(0, 5, tr(p.Description), "", "", false)
		}
		pdf.Ln(3)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s", FormatCount(len(projects), "project")))
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	for _, s := range models.ProjectStatuses {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %d", s.Label(), counts[s]))
		pdf.Ln(5)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	return pdf.OutputFileAndClose(path)
}
