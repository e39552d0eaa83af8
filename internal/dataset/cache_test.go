package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestCacheReusesUntilFileChanges(t *testing.T) {
	p := writeFile(t, "metadata.csv", "title,year\nA,2020\n")
	c := NewCache(Options{})
	defer c.Close()

	first, err := c.Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	first.Release()
	second, err := c.Load(p)
	if err != nil {
		t.Fatalf("Load again: %v", err)
	}
	if second != first {
		t.Fatalf("expected cached table to be reused")
	}
	second.Release()
	if c.Loads() != 1 {
		t.Fatalf("loads = %d, want 1", c.Loads())
	}

	if err := os.WriteFile(p, []byte("title,year\nA,2020\nB,2021\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	third, err := c.Load(p)
	if err != nil {
		t.Fatalf("Load after change: %v", err)
	}
	defer third.Release()
	if third.NumRows() != 2 {
		t.Fatalf("rows = %d, want 2 after reload", third.NumRows())
	}
	if c.Loads() != 2 {
		t.Fatalf("loads = %d, want 2", c.Loads())
	}
}

func TestCacheReportsMissingFile(t *testing.T) {
	p := writeFile(t, "metadata.csv", "title\nA\n")
	c := NewCache(Options{})
	defer c.Close()

	tbl, err := c.Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tbl.Release()
	if err := os.Remove(p); err != nil {
		t.Fatalf("remove: %v", err)
	}
	_, err = c.Load(p)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError after removal, got %v", err)
	}
}

func TestCacheConcurrentLoads(t *testing.T) {
	p := writeFile(t, "metadata.csv", "title,year\nA,2020\nB,2021\n")
	c := NewCache(Options{})
	defer c.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tbl, err := c.Load(p)
			if err != nil {
				errs <- err
				return
			}
			defer tbl.Release()
			if tbl.NumRows() != 2 {
				errs <- errors.New("wrong row count")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
	if c.Loads() != 1 {
		t.Fatalf("loads = %d, want 1", c.Loads())
	}
}

func TestEagerLoaderReadsEveryTime(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing.csv")
	_, err := Eager{}.Load(p)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
