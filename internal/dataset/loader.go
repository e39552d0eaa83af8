package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/paperdash/internal/utils"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Options controls how a data file is read.
type Options struct {
	// Delimiter for CSV. If 0, '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// XLSX sheet selection: SheetName wins, else 1-based SheetIndex (default 1).
	SheetName  string
	SheetIndex int
	// Allocator for Arrow buffers; nil means a Go allocator.
	Allocator memory.Allocator
}

func (o Options) allocator() memory.Allocator {
	if o.Allocator != nil {
		return o.Allocator
	}
	return memory.NewGoAllocator()
}

// Reader reads one file format into a Table.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt Options) (*Table, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

func init() {
	Register(xlsxReader{})
	Register(parquetReader{})
	Register(csvReader{})
}

// Load reads the file at path into a Table. The reader is chosen by file
// extension; anything unrecognized is read as comma-separated text.
//
// Failures are either *NotFoundError or *ParseError.
func Load(path string, opt Options) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ParseError{Path: path, Err: errors.New("path is a directory")}
	}
	var r Reader = csvReader{}
	for _, candidate := range registry {
		if candidate.CanRead(path) {
			r = candidate
			break
		}
	}
	t, err := r.Read(path, opt)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	t.Name = filepath.Base(path)
	t.Path = path
	return t, nil
}

// Loader hands out tables for a path. Callers Release what they receive.
type Loader interface {
	Load(path string) (*Table, error)
}

// Eager re-reads the file on every call.
type Eager struct {
	Options Options
}

func (e Eager) Load(path string) (*Table, error) { return Load(path, e.Options) }

// LoadedMessage is the informational line reported after a successful load.
func LoadedMessage(t *Table) string {
	return fmt.Sprintf("Loaded %s rows from %s", utils.FormatThousands(t.NumRows()), t.Name)
}
