package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/dsreport-cli/internal/dataset"
	"github.com/KaramelBytes/dsreport-cli/internal/project"
)

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestAddDatasetSaveAndLoad(t *testing.T) {
	tdir := t.TempDir()
	csv := writeCSV(t, tdir, "titanic_train.csv", "Age,Sex,Survived\n22,male,0\n38,female,1\n")

	proj := project.NewProject("ml", "", filepath.Join(tdir, "proj"))
	ref, err := proj.AddDataset(csv, "", "Survived", dataset.DefaultOptions())
	if err != nil {
		t.Fatalf("add dataset: %v", err)
	}
	if ref.Name != "titanic train" {
		t.Fatalf("unexpected display name %q", ref.Name)
	}
	if ref.Rows != 2 || ref.Columns != 3 {
		t.Fatalf("unexpected shape %dx%d", ref.Rows, ref.Columns)
	}
	if err := proj.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := project.LoadProject(proj.RootDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := loaded.Datasets[ref.ID]
	if !ok {
		t.Fatalf("dataset %s missing after reload", ref.ID)
	}
	if got.Target != "Survived" || got.Path != ref.Path {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestAddDatasetRejectsUnknownTarget(t *testing.T) {
	tdir := t.TempDir()
	csv := writeCSV(t, tdir, "a.csv", "x,y\n1,2\n")
	proj := project.NewProject("p", "", filepath.Join(tdir, "proj"))
	if _, err := proj.AddDataset(csv, "A", "label", dataset.DefaultOptions()); err == nil {
		t.Fatalf("expected error for unknown target column")
	}
	if len(proj.Datasets) != 0 {
		t.Fatalf("dataset registered despite error")
	}
}

func TestAddDatasetUnsupportedFormat(t *testing.T) {
	tdir := t.TempDir()
	doc := writeCSV(t, tdir, "notes.pdf", "x")
	proj := project.NewProject("p", "", filepath.Join(tdir, "proj"))
	_, err := proj.AddDataset(doc, "", "", dataset.DefaultOptions())
	if !errors.Is(err, dataset.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFindDataset(t *testing.T) {
	tdir := t.TempDir()
	a := writeCSV(t, tdir, "a.csv", "x\n1\n")
	b := writeCSV(t, tdir, "b.csv", "y\n2\n")
	proj := project.NewProject("p", "", filepath.Join(tdir, "proj"))
	ra, err := proj.AddDataset(a, "Iris", "", dataset.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := proj.AddDataset(b, "Wine", "", dataset.DefaultOptions()); err != nil {
		t.Fatal(err)
	}

	if d, err := proj.FindDataset(ra.ID); err != nil || d != ra {
		t.Fatalf("by id: %v", err)
	}
	if d, err := proj.FindDataset("iris"); err != nil || d != ra {
		t.Fatalf("by name: %v", err)
	}
	if d, err := proj.FindDataset(ra.ID[:8]); err != nil || d != ra {
		t.Fatalf("by prefix: %v", err)
	}
	_, err = proj.FindDataset("titanic")
	if !errors.Is(err, project.ErrDatasetNotFound) {
		t.Fatalf("expected ErrDatasetNotFound, got %v", err)
	}
}

func TestSetTarget(t *testing.T) {
	tdir := t.TempDir()
	csv := writeCSV(t, tdir, "a.csv", "x,label\n1,a\n2,b\n")
	proj := project.NewProject("p", "", filepath.Join(tdir, "proj"))
	ref, err := proj.AddDataset(csv, "A", "", dataset.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if err := proj.SetTarget("A", "label"); err != nil {
		t.Fatalf("set target: %v", err)
	}
	if ref.Target != "label" {
		t.Fatalf("target not set")
	}
	if err := proj.SetTarget("A", "nope"); err == nil {
		t.Fatalf("expected error for unknown column")
	}
	if err := proj.SetTarget("A", ""); err != nil || ref.Target != "" {
		t.Fatalf("clear target: %v", err)
	}
}

func TestRecordReportAndSortedDatasets(t *testing.T) {
	tdir := t.TempDir()
	proj := project.NewProject("p", "", filepath.Join(tdir, "proj"))
	for _, n := range []string{"first", "second"} {
		csv := writeCSV(t, tdir, n+".csv", "x\n1\n")
		if _, err := proj.AddDataset(csv, n, "", dataset.DefaultOptions()); err != nil {
			t.Fatal(err)
		}
	}
	sorted := proj.SortedDatasets()
	if len(sorted) != 2 || sorted[0].Name != "first" {
		t.Fatalf("unexpected order: %v, %v", sorted[0].Name, sorted[1].Name)
	}

	rec := proj.RecordReport(sorted[0].ID, "first_analysis_report.md", "text/markdown")
	if rec.ID == "" || len(proj.Reports) != 1 {
		t.Fatalf("report not recorded")
	}
	if proj.ReportsDir() != filepath.Join(tdir, "proj", "reports") {
		t.Fatalf("unexpected reports dir %s", proj.ReportsDir())
	}
}

func TestLoadProjectMissing(t *testing.T) {
	if _, err := project.LoadProject(t.TempDir()); err == nil {
		t.Fatalf("expected error for missing project.json")
	}
}

func TestDatasetByPath(t *testing.T) {
	tdir := t.TempDir()
	csv := writeCSV(t, tdir, "a.csv", "x\n1\n")
	proj := project.NewProject("p", "", filepath.Join(tdir, "proj"))
	ref, err := proj.AddDataset(csv, "", "", dataset.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := proj.DatasetByPath(csv); got != ref {
		t.Fatalf("expected registered dataset, got %v", got)
	}
	if got := proj.DatasetByPath(filepath.Join(tdir, "other.csv")); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
