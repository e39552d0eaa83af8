package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/KaramelBytes/paperdash/internal/analysis"
	"github.com/KaramelBytes/paperdash/internal/chart"
	"github.com/KaramelBytes/paperdash/internal/classify"
	"github.com/KaramelBytes/paperdash/internal/dataset"
)

type page struct {
	Title  string
	Active string
	Banner string
}

type dashboardPage struct {
	page
	*analysis.Dashboard
	TopMin, TopMax int
}

type explorerPage struct {
	page
	AllColumns   []classify.Descriptor
	Selected     map[string]bool
	SampleSize   int
	SampleMax    int
	Sample       analysis.Sample
	Dtypes       []analysis.DtypeCount
	Missing      []analysis.ColumnMissing
	Numeric      []analysis.NumericStats
	NoneSelected bool
}

type errorPage struct {
	page
	Message string
}

func (s *Server) basePage(active string, t *dataset.Table) page {
	p := page{Title: s.cfg.Title, Active: active}
	if t != nil {
		p.Banner = dataset.LoadedMessage(t)
	}
	return p
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	t, ok := s.loadOrFail(w, r)
	if !ok {
		return
	}
	defer t.Release()
	top := s.topParam(r)
	s.render(w, r, http.StatusOK, "dashboard", dashboardPage{
		page:      s.basePage("dashboard", t),
		Dashboard: analysis.BuildDashboard(t, top),
		TopMin:    MinTopN,
		TopMax:    MaxTopN,
	})
}

func (s *Server) handleExplorer(w http.ResponseWriter, r *http.Request) {
	t, ok := s.loadOrFail(w, r)
	if !ok {
		return
	}
	defer t.Release()

	names := t.ColumnNames()
	var cols []string
	if vals, given := r.URL.Query()["cols"]; given {
		for _, v := range vals {
			if v = strings.TrimSpace(v); v != "" {
				cols = append(cols, v)
			}
		}
	} else {
		n := clamp(s.cfg.DefaultColumns, 0, len(names))
		cols = names[:n]
	}
	selected := make(map[string]bool, len(cols))
	for _, c := range cols {
		selected[c] = true
	}
	sample := intParam(r, "sample", s.cfg.DefaultSampleSize)
	sample = clamp(sample, MinSampleSize, MaxSampleSize)

	summary := analysis.Summarize(t)
	data := explorerPage{
		page:       s.basePage("explorer", t),
		AllColumns: classify.Describe(names),
		Selected:   selected,
		SampleSize: sample,
		SampleMax:  MaxSampleSize,
		Sample:     analysis.Head(t, cols, sample),
		Dtypes:     analysis.DtypeCounts(t),
		Missing:    summary.MissingByColumn,
		Numeric:    analysis.DescribeNumeric(t),
	}
	data.NoneSelected = len(data.Sample.Columns) == 0
	s.render(w, r, http.StatusOK, "explorer", data)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	t, ok := s.loadOrFail(w, r)
	if !ok {
		return
	}
	defer t.Release()
	s.render(w, r, http.StatusOK, "about", s.basePage("about", t))
}

func (s *Server) handleTimeSeriesChart(w http.ResponseWriter, r *http.Request) {
	t, err := s.load()
	if err != nil {
		s.chartLoadError(w, r, err)
		return
	}
	defer t.Release()
	roles := classify.Classify(t.ColumnNames())
	s.writeChart(w, r, func(opts chart.Options) ([]byte, error) {
		return chart.TimeSeries(analysis.TimeSeries(t, roles.Year), opts)
	})
}

func (s *Server) handleJournalsChart(w http.ResponseWriter, r *http.Request) {
	t, err := s.load()
	if err != nil {
		s.chartLoadError(w, r, err)
		return
	}
	defer t.Release()
	roles := classify.Classify(t.ColumnNames())
	top := s.topParam(r)
	s.writeChart(w, r, func(opts chart.Options) ([]byte, error) {
		return chart.TopJournals(analysis.TopN(t, roles.Journal, top), top, opts)
	})
}

func (s *Server) handleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	t, err := s.load()
	if err != nil {
		s.log.ErrorContext(r.Context(), "load dataset", slog.String("id", RequestID(r.Context())), slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	defer t.Release()
	writeJSON(w, http.StatusOK, analysis.BuildDashboard(t, s.topParam(r)))
}

// loadOrFail loads the dataset or renders the error page and nothing else.
func (s *Server) loadOrFail(w http.ResponseWriter, r *http.Request) (*dataset.Table, bool) {
	t, err := s.load()
	if err == nil {
		return t, true
	}
	s.log.ErrorContext(r.Context(), "load dataset", slog.String("id", RequestID(r.Context())), slog.Any("err", err))
	s.render(w, r, http.StatusInternalServerError, "error", errorPage{
		page:    s.basePage("", nil),
		Message: err.Error(),
	})
	return nil, false
}

func (s *Server) chartLoadError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "load dataset", slog.String("id", RequestID(r.Context())), slog.Any("err", err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) writeChart(w http.ResponseWriter, r *http.Request, draw func(chart.Options) ([]byte, error)) {
	opts := chart.Options{Width: s.cfg.ChartWidth, Height: s.cfg.ChartHeight, Format: chart.SVG}
	b, err := draw(opts)
	if errors.Is(err, chart.ErrNoData) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.ErrorContext(r.Context(), "render chart", slog.String("id", RequestID(r.Context())), slog.Any("err", err))
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", opts.Format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(b)
}

// render executes a page into a buffer first so template errors never send a
// half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages[name].Execute(&buf, data); err != nil {
		s.log.ErrorContext(r.Context(), "render page", slog.String("page", name), slog.Any("err", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) topParam(r *http.Request) int {
	return clamp(intParam(r, "top", s.cfg.DefaultTopN), MinTopN, MaxTopN)
}

// intParam reads an integer query value, falling back to def when it is
// missing or malformed.
func intParam(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
