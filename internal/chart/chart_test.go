package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/paperdash/internal/analysis"
)

func TestTimeSeriesSVG(t *testing.T) {
	pts := []analysis.Count{{Key: "2019", Count: 2}, {Key: "2020", Count: 30}, {Key: "2021", Count: 12}}
	b, err := TimeSeries(pts, Options{Width: 800, Height: 400})
	if err != nil {
		t.Fatalf("TimeSeries: %v", err)
	}
	svg := string(b)
	if !strings.Contains(svg, "<svg") {
		t.Fatalf("expected svg output")
	}
	for _, want := range []string{"Publications Over Time", "2019", "2021"} {
		if !strings.Contains(svg, want) {
			t.Fatalf("svg missing %q", want)
		}
	}
}

func TestTimeSeriesSinglePoint(t *testing.T) {
	b, err := TimeSeries([]analysis.Count{{Key: "2020", Count: 5}}, Options{Format: PNG})
	if err != nil {
		t.Fatalf("TimeSeries single point: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("expected png header")
	}

	b, err = TimeSeries([]analysis.Count{{Key: "2020", Count: 5}}, Options{})
	if err != nil {
		t.Fatalf("TimeSeries single point svg: %v", err)
	}
	if !strings.Contains(string(b), "2020") {
		t.Fatalf("single year label missing")
	}
}

func TestTopJournalsTruncatesLabels(t *testing.T) {
	long := strings.Repeat("A", 45)
	pts := []analysis.Count{{Key: long, Count: 9}, {Key: "Lancet", Count: 4}, {Key: "Nature", Count: 1}}
	b, err := TopJournals(pts, 2, Options{})
	if err != nil {
		t.Fatalf("TopJournals: %v", err)
	}
	svg := string(b)
	if !strings.Contains(svg, "Top 2 Publishing Journals") {
		t.Fatalf("svg missing title")
	}
	if strings.Contains(svg, long) {
		t.Fatalf("full label should not be rendered")
	}
	if strings.Contains(svg, "Nature") {
		t.Fatalf("bars beyond n should be dropped")
	}
}

func TestNoData(t *testing.T) {
	if _, err := TimeSeries(nil, Options{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("TimeSeries(nil) err = %v", err)
	}
	if _, err := TopJournals([]analysis.Count{}, 10, Options{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("TopJournals(empty) err = %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", SVG, false},
		{"SVG", SVG, false},
		{" png ", PNG, false},
		{"jpeg", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
	if PNG.ContentType() != "image/png" || SVG.ContentType() != "image/svg+xml" {
		t.Fatalf("unexpected content types")
	}
}

func TestNiceMax(t *testing.T) {
	tests := map[float64]float64{0: 1, 1: 2, 9: 10, 30: 50, 95: 100, 120: 200}
	for in, want := range tests {
		if got := niceMax(in); got != want {
			t.Errorf("niceMax(%v) = %v, want %v", in, got, want)
		}
	}
}
