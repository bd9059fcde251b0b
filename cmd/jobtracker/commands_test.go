package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cesargomez89/jobtracker/internal/backup"
	"github.com/cesargomez89/jobtracker/internal/domain"
	"github.com/cesargomez89/jobtracker/internal/storage"
	"github.com/cesargomez89/jobtracker/internal/store"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--env-file", ""))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func seedDB(t *testing.T, path string) {
	t.Helper()
	db, err := store.NewSQLiteDB(path)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	e := &domain.Employer{Name: "Acme", CreatedAt: now, UpdatedAt: now}
	if err := db.CreateEmployer(ctx, e); err != nil {
		t.Fatalf("CreateEmployer: %v", err)
	}
	j := &domain.Job{EmployerID: e.ID, Title: "Dev", Status: domain.JobStatusApplied, CreatedAt: now, UpdatedAt: now}
	if err := db.CreateJob(ctx, j); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if err := db.CreateKeyword(ctx, &domain.Keyword{JobID: j.ID, Keyword: "go", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("CreateKeyword: %v", err)
	}
}

func countJobs(t *testing.T, path string) int {
	t.Helper()
	db, err := store.NewSQLiteDB(path)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()
	n, err := db.Count(context.Background(), store.TableJobs)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	return n
}

func TestExportToStdout(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "src.db")
	seedDB(t, dbPath)

	out, _, err := runCLI(t, "export", "--db", dbPath)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var doc backup.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("stdout is not a snapshot: %v", err)
	}
	if len(doc.Employers) != 1 || len(doc.Jobs) != 1 || len(doc.Keywords) != 1 {
		t.Errorf("unexpected document contents: %+v", doc)
	}
}

func TestExportToDirectory(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "src.db")
	seedDB(t, dbPath)
	outDir := filepath.Join(dir, "backups")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "export", "--db", dbPath, "-o", outDir); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(outDir, "job-applications-tracker-*.json"))
	if len(matches) != 1 {
		t.Fatalf("expected one snapshot file, found %v", matches)
	}
}

func TestImportRequiresConfirmation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "dst.db")
	seedDB(t, dbPath)
	file := filepath.Join(dir, "snapshot.json")
	if err := os.WriteFile(file, []byte(`{"version":"1.0","exportDate":"x","employers":[],"jobs":[],"keywords":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := runCLI(t, "import", file, "--db", dbPath)
	if !errors.Is(err, errNotConfirmed) {
		t.Fatalf("expected errNotConfirmed, got %v", err)
	}
	if !strings.Contains(stderr, backup.WarningText) {
		t.Errorf("warning not shown, stderr: %q", stderr)
	}
	if n := countJobs(t, dbPath); n != 1 {
		t.Errorf("store changed without confirmation: %d jobs", n)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")
	file := filepath.Join(dir, "snapshot.json")
	seedDB(t, src)

	if _, _, err := runCLI(t, "export", "--db", src, "-o", file); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out, _, err := runCLI(t, "import", file, "--db", dst, "--dry-run")
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !strings.Contains(out, "Dry run") {
		t.Errorf("dry run not reported: %q", out)
	}
	if n := countJobs(t, dst); n != 0 {
		t.Errorf("dry run wrote %d jobs", n)
	}

	out, _, err = runCLI(t, "import", file, "--db", dst, "--yes", "--json")
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	var res backup.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if res.JobsImported != 1 || res.KeywordsImported != 1 {
		t.Errorf("unexpected result: %+v", res)
	}

	out, _, err = runCLI(t, "stats", "--db", dst)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, "Jobs:          1") || strings.Contains(out, "Last import:   never") {
		t.Errorf("unexpected stats output:\n%s", out)
	}
}

func TestImportRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "dst.db")
	seedDB(t, dbPath)
	file := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(file, []byte(`{"employers":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := runCLI(t, "import", file, "--db", dbPath, "--yes")
	if !errors.Is(err, backup.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
	if !strings.Contains(stderr, "nothing changed") {
		t.Errorf("failure message missing, stderr: %q", stderr)
	}
	if n := countJobs(t, dbPath); n != 1 {
		t.Errorf("store changed: %d jobs", n)
	}
}

func TestImportChecksum(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")
	file := filepath.Join(dir, "snapshot.json")
	seedDB(t, src)

	_, stderr, err := runCLI(t, "export", "--db", src, "-o", file)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	sum, err := storage.HashFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, sum) {
		t.Errorf("export did not report checksum %s: %q", sum, stderr)
	}

	_, _, err = runCLI(t, "import", file, "--db", dst, "--yes", "--sha256", strings.Repeat("0", 64))
	if !errors.Is(err, errChecksumMismatch) {
		t.Fatalf("expected errChecksumMismatch, got %v", err)
	}
	if n := countJobs(t, dst); n != 0 {
		t.Errorf("mismatched snapshot was imported: %d jobs", n)
	}

	if _, _, err := runCLI(t, "import", file, "--db", dst, "--yes", "--sha256", sum); err != nil {
		t.Fatalf("import with matching checksum failed: %v", err)
	}
	if n := countJobs(t, dst); n != 1 {
		t.Errorf("expected 1 job after import, got %d", n)
	}
}
