package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

type parquetReader struct{}

func (parquetReader) CanRead(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".parquet")
}

// Read loads every row group and flattens each column into one array.
func (parquetReader) Read(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f)
	if err != nil {
		return nil, fmt.Errorf("read parquet footer: %w", err)
	}
	defer pf.Close()

	mem := opt.allocator()
	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("create arrow reader: %w", err)
	}
	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("read parquet data: %w", err)
	}
	defer tbl.Release()

	schema := tbl.Schema()
	fields := make([]arrow.Field, tbl.NumCols())
	cols := make([]arrow.Array, 0, tbl.NumCols())
	release := func() {
		for _, c := range cols {
			c.Release()
		}
	}
	for i := 0; i < int(tbl.NumCols()); i++ {
		fields[i] = schema.Field(i)
		chunks := tbl.Column(i).Data().Chunks()
		var arr arrow.Array
		switch len(chunks) {
		case 0:
			arr = array.MakeArrayOfNull(mem, fields[i].Type, 0)
		case 1:
			chunks[0].Retain()
			arr = chunks[0]
		default:
			arr, err = array.Concatenate(chunks, mem)
			if err != nil {
				release()
				return nil, fmt.Errorf("column %q: %w", fields[i].Name, err)
			}
		}
		cols = append(cols, arr)
	}
	t, err := NewTable(filepath.Base(path), fields, cols)
	if err != nil {
		release()
		return nil, err
	}
	return t, nil
}
