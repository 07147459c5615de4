package scanner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/starford/keyscan/internal/apperr"
	"github.com/starford/keyscan/internal/models"
	"github.com/starford/keyscan/internal/testutil"
)

type recorder struct {
	matches []models.Match
	errs    []models.FileError
}

func (r *recorder) Match(m models.Match) error {
	r.matches = append(r.matches, m)
	return nil
}

func (r *recorder) FileError(e models.FileError) error {
	r.errs = append(r.errs, e)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scan(t *testing.T, files map[string]string, keywords []string) (string, *recorder, models.Summary) {
	t.Helper()
	dir, store := testutil.TestTree(t, files)
	rec := &recorder{}
	sum, err := New(store, quietLogger()).Scan(context.Background(), models.ScanRequest{Keywords: keywords}, rec)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return dir, rec, sum
}

func TestScan_TextAndBinaryScenario(t *testing.T) {
	dir, rec, sum := scan(t, map[string]string{
		"a.txt": "hello world\nfoo bar\n",
		"a.bin": "foo",
	}, []string{"foo", "bar"})

	want := []models.Match{
		{Keyword: "foo", Path: filepath.Join(dir, "a.txt"), Line: 2, Text: "foo bar"},
		{Keyword: "bar", Path: filepath.Join(dir, "a.txt"), Line: 2, Text: "foo bar"},
	}
	if !reflect.DeepEqual(rec.matches, want) {
		t.Errorf("matches = %+v, want %+v", rec.matches, want)
	}
	if len(rec.errs) != 0 {
		t.Errorf("unexpected file errors: %+v", rec.errs)
	}
	if sum.FilesScanned != 1 || sum.Matches != 2 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestScan_IneligibleFilesNeverMatch(t *testing.T) {
	_, rec, _ := scan(t, map[string]string{
		"notes.TXT":      "needle",
		"main.go":        "needle",
		"Makefile":       "needle",
		"archive.txt.gz": "needle",
	}, []string{"needle"})
	if len(rec.matches) != 0 {
		t.Errorf("expected no matches, got %+v", rec.matches)
	}
}

func TestScan_AllExtensionsEligible(t *testing.T) {
	files := make(map[string]string)
	for _, ext := range TextExtensions {
		files["f"+ext] = "needle"
	}
	_, rec, _ := scan(t, files, []string{"needle"})
	if len(rec.matches) != len(TextExtensions) {
		t.Errorf("matches = %d, want %d", len(rec.matches), len(TextExtensions))
	}
}

func TestScan_ExcludedPathNeverScanned(t *testing.T) {
	dir, store := testutil.TestTree(t, map[string]string{
		"self.py":  "needle",
		"other.py": "needle",
	})
	rec := &recorder{}
	req := models.ScanRequest{Keywords: []string{"needle"}, Exclude: filepath.Join(dir, "self.py")}
	if _, err := New(store, quietLogger()).Scan(context.Background(), req, rec); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(rec.matches) != 1 || filepath.Base(rec.matches[0].Path) != "other.py" {
		t.Errorf("matches = %+v, want only other.py", rec.matches)
	}
}

func TestScan_OneRecordPerKeywordPerLine(t *testing.T) {
	_, rec, _ := scan(t, map[string]string{
		"a.md": "foo foo foo\nnothing here\n",
	}, []string{"foo", "zzz"})
	if len(rec.matches) != 1 {
		t.Fatalf("matches = %+v, want exactly one", rec.matches)
	}
	if rec.matches[0].Line != 1 || rec.matches[0].Keyword != "foo" {
		t.Errorf("match = %+v", rec.matches[0])
	}
}

func TestScan_KeywordOrderPreserved(t *testing.T) {
	_, rec, _ := scan(t, map[string]string{
		"a.md": "alpha beta\n",
	}, []string{"beta", "alpha"})
	if len(rec.matches) != 2 {
		t.Fatalf("matches = %+v", rec.matches)
	}
	if rec.matches[0].Keyword != "beta" || rec.matches[1].Keyword != "alpha" {
		t.Errorf("order = %q, %q", rec.matches[0].Keyword, rec.matches[1].Keyword)
	}
}

func TestScan_DuplicateKeywordsReportedTwice(t *testing.T) {
	_, rec, _ := scan(t, map[string]string{"a.md": "foo\n"}, []string{"foo", "foo"})
	if len(rec.matches) != 2 {
		t.Errorf("matches = %d, want 2", len(rec.matches))
	}
}

func TestScan_CaseSensitive(t *testing.T) {
	_, rec, _ := scan(t, map[string]string{"a.txt": "foo bar\n"}, []string{"Foo"})
	if len(rec.matches) != 0 {
		t.Errorf("expected no matches, got %+v", rec.matches)
	}
}

func TestScan_EmptyKeywordMatchesEveryLine(t *testing.T) {
	_, rec, _ := scan(t, map[string]string{"a.txt": "one\n\nthree"}, []string{""})
	if len(rec.matches) != 3 {
		t.Errorf("matches = %d, want 3", len(rec.matches))
	}
}

func TestScan_TrimsReportedText(t *testing.T) {
	_, rec, _ := scan(t, map[string]string{"a.txt": "\t  padded foo  \r\n"}, []string{"foo"})
	if len(rec.matches) != 1 || rec.matches[0].Text != "padded foo" {
		t.Errorf("matches = %+v", rec.matches)
	}
}

func TestScan_InvalidUTF8SkipsOnlyThatFile(t *testing.T) {
	dir, rec, sum := scan(t, map[string]string{
		"bad.txt":  "foo\n\xff\xfe foo\n",
		"good.txt": "foo\n",
	}, []string{"foo"})

	if len(rec.errs) != 1 {
		t.Fatalf("file errors = %+v, want 1", rec.errs)
	}
	if rec.errs[0].Path != filepath.Join(dir, "bad.txt") {
		t.Errorf("error path = %q", rec.errs[0].Path)
	}
	if !errors.Is(rec.errs[0].Err, apperr.ErrInvalidEncoding) {
		t.Errorf("error = %v, want ErrInvalidEncoding", rec.errs[0].Err)
	}
	if len(rec.matches) != 1 || filepath.Base(rec.matches[0].Path) != "good.txt" {
		t.Errorf("matches = %+v, want only good.txt", rec.matches)
	}
	if sum.FilesSkipped != 1 || sum.FilesScanned != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestScan_PermissionDeniedSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	dir, store := testutil.TestTree(t, map[string]string{
		"locked.txt": "foo",
		"open.txt":   "foo",
	})
	locked := filepath.Join(dir, "locked.txt")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

	rec := &recorder{}
	if _, err := New(store, quietLogger()).Scan(context.Background(), models.ScanRequest{Keywords: []string{"foo"}}, rec); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(rec.errs) != 1 || rec.errs[0].Path != locked {
		t.Errorf("file errors = %+v", rec.errs)
	}
	if len(rec.matches) != 1 {
		t.Errorf("matches = %+v", rec.matches)
	}
}

func TestScan_DanglingSymlinkIsFatal(t *testing.T) {
	dir, store := testutil.TestTree(t, map[string]string{"a.txt": "foo"})
	if err := os.Symlink(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "b.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	rec := &recorder{}
	_, err := New(store, quietLogger()).Scan(context.Background(), models.ScanRequest{Keywords: []string{"foo"}}, rec)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	_, rec, sum := scan(t, nil, []string{"foo"})
	if len(rec.matches) != 0 || len(rec.errs) != 0 {
		t.Errorf("expected no output, got %+v", rec)
	}
	if sum != (models.Summary{}) {
		t.Errorf("summary = %+v", sum)
	}
}

func TestScan_CancelledContext(t *testing.T) {
	_, store := testutil.TestTree(t, map[string]string{"a.txt": "foo"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(store, quietLogger()).Scan(ctx, models.ScanRequest{Keywords: []string{"foo"}}, &recorder{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

type failingSink struct{ recorder }

func (f *failingSink) Match(models.Match) error { return errors.New("stdout closed") }

func TestScan_SinkErrorAborts(t *testing.T) {
	_, store := testutil.TestTree(t, map[string]string{"a.txt": "foo", "b.txt": "foo"})
	_, err := New(store, quietLogger()).Scan(context.Background(), models.ScanRequest{Keywords: []string{"foo"}}, &failingSink{})
	if err == nil {
		t.Fatal("expected sink error to abort the scan")
	}
}

func TestScan_Subdirectory(t *testing.T) {
	_, store := testutil.TestTree(t, map[string]string{
		"top.txt":     "foo",
		"sub/low.txt": "foo",
	})
	rec := &recorder{}
	req := models.ScanRequest{Root: "sub", Keywords: []string{"foo"}}
	if _, err := New(store, quietLogger()).Scan(context.Background(), req, rec); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(rec.matches) != 1 || filepath.Base(rec.matches[0].Path) != "low.txt" {
		t.Errorf("matches = %+v", rec.matches)
	}
}

func TestEligibleFiles(t *testing.T) {
	dir, store := testutil.TestTree(t, map[string]string{
		"a.txt":      "",
		"b.bin":      "",
		"sub/c.json": "",
		"skip.md":    "",
	})
	got, err := New(store, quietLogger()).EligibleFiles(context.Background(), "", filepath.Join(dir, "skip.md"))
	if err != nil {
		t.Fatalf("EligibleFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "sub", "c.json")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
}
