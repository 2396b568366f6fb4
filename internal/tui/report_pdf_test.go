package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/christophertwo/aella/internal/models"
	"github.com/christophertwo/aella/internal/testutil"
)

func TestGenerateProjectReport(t *testing.T) {
	projects := []models.Project{
		testutil.NewProject().WithID("p1").WithName("Café renovation").WithMembers("Ana, Luis").Build(),
		testutil.NewProject().WithID("p2").WithName("Warehouse").WithStatus(models.StatusOnHold).WithDescription("").Build(),
	}
	path := filepath.Join(t.TempDir(), "nested", "report.pdf")
	if err := GenerateProjectReport(path, "status:on_hold", projects, testNow); err != nil {
		t.Fatalf("GenerateProjectReport failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a PDF header")
	}
}

func TestGenerateProjectReportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := GenerateProjectReport(path, "", nil, testNow); err != nil {
		t.Fatalf("GenerateProjectReport failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty file, err %v", err)
	}
}
