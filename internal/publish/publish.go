// Package publish moves minibooks between memory and files on disk.
package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"minibook-cli/internal/codec"
	"minibook-cli/internal/model"
	"minibook-cli/internal/store"
)

// DefaultExportBase is the file name stem used when a document has no title.
const DefaultExportBase = "minibook"

var ErrNothingToExport = errors.New("nothing to export: document needs a title and at least one chapter")

var ErrLossyRewrite = errors.New("rewrite would lose headings")

// LossyRewriteError reports headings in an existing file that would not survive a
// parse-then-write cycle.
type LossyRewriteError struct {
	Path     string
	Headings []codec.Diagnostic
}

func (e *LossyRewriteError) Error() string {
	first := e.Headings[0]
	return fmt.Sprintf("%s: %d heading(s) would be lost by rewriting (first at line %d: %q); use --force to rewrite anyway",
		e.Path, len(e.Headings), first.Line, first.Text)
}

func (e *LossyRewriteError) Is(target error) bool { return target == ErrLossyRewrite }

type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return "file exists (use --overwrite): " + e.Path
}

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written" yaml:"written"`
	Bytes   int      `json:"bytes" yaml:"bytes"`
}

// ReadDocument parses the markdown file at path. Parsing never fails; only I/O does.
func ReadDocument(path string) (model.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, err
	}
	return codec.Parse(string(b)), nil
}

// CheckRewrite refuses to let a parsed copy of path replace it when the file holds headings
// the parser drops or overrides. A missing file is fine.
func CheckRewrite(path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return CheckRewriteText(path, string(b))
}

// CheckRewriteText is CheckRewrite for text already read from path.
func CheckRewriteText(path, text string) error {
	if lossy := codec.LossyHeadings(text); len(lossy) > 0 {
		return &LossyRewriteError{Path: path, Headings: lossy}
	}
	return nil
}

// RoundTrips reports whether doc reads back from its own serialization without losing headings.
func RoundTrips(doc model.Document) bool {
	return len(codec.LossyHeadings(codec.Serialize(doc))) == 0
}

// WriteDocument serializes doc to path.
func WriteDocument(path string, doc model.Document, opt WriteOptions) (WriteResult, error) {
	return writeFile(path, []byte(codec.Serialize(doc)), opt.Overwrite)
}

// CanExport reports whether doc has the minimum needed for an export.
func CanExport(doc model.Document) bool {
	return strings.TrimSpace(doc.Title) != "" && len(doc.Chapters) > 0
}

// ExportFileName is "<title>.md", or "minibook.md" without a title. Path separators in the
// title are replaced so the name stays a single path element.
func ExportFileName(doc model.Document) string {
	base := strings.TrimSpace(doc.Title)
	if base == "" {
		base = DefaultExportBase
	}
	base = strings.NewReplacer("/", "-", "\\", "-").Replace(base)
	return base + ".md"
}

// Export writes doc into dir under ExportFileName. It refuses documents CanExport rejects.
func Export(doc model.Document, dir string, opt WriteOptions) (WriteResult, error) {
	if !CanExport(doc) {
		return WriteResult{}, ErrNothingToExport
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return WriteResult{}, err
	}
	return WriteDocument(filepath.Join(filepath.Clean(dir), ExportFileName(doc)), doc, opt)
}

func writeFile(path string, b []byte, overwrite bool) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing output path")
	}
	path = filepath.Clean(path)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return WriteResult{}, &FileExistsError{Path: path}
		}
	}
	if err := store.AtomicWriteFile(path, b, 0o644); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}, Bytes: len(b)}, nil
}
