package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cloud-ru/finboard-go/internal/calculations"
	"github.com/cloud-ru/finboard-go/internal/display"
	"github.com/cloud-ru/finboard-go/internal/listing"
	"github.com/cloud-ru/finboard-go/internal/service"
)

const (
	msgNoData    = "No data available to display."
	msgNoMatch   = "No items found matching your search."
	msgNoResults = "No data to display."
)

type homeView struct {
	Cards []homeCard
}

type overviewView struct {
	Kind       listing.Kind
	Query      string
	Headers    []string
	Rows       [][]listing.Cell
	Total      int
	Matched    int
	Empty      string
	LoadFailed bool
}

type calculatorForm struct {
	Deposit      string
	Contribution string
	Years        string
	Rate         string
}

type breakdownRow struct {
	Label     string
	Principal string
	Interest  string
	Ratio     string
	Balance   string
}

type calculatorView struct {
	Form           calculatorForm
	Error          string
	Years          int
	TotalPrincipal string
	TotalInterest  string
	EndBalance     string
	FromYear       int
	ToYear         int
	Chart          *chartView
	Rows           []breakdownRow
}

type projectionResponse struct {
	Input     calculations.ProjectionInput  `json:"input"`
	Summary   calculations.ProjectionSummary `json:"summary"`
	Breakdown []calculations.YearPoint       `json:"breakdown"`
	Chart     []service.ChartPoint           `json:"chart"`
}

type listingsResponse struct {
	Kind      string           `json:"kind"`
	Total     int              `json:"total"`
	Matched   int              `json:"matched"`
	Records   []listing.Record `json:"records"`
	LoadError string           `json:"load_error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home.html", "Home", homeView{Cards: s.cards})
}

func (s *Server) handleOverview(kind listing.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		snap, matched, err := s.catalog.Search(kind.Name, query)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		columns := listing.DefaultColumns()
		view := overviewView{
			Kind:       kind,
			Query:      query,
			Headers:    make([]string, len(columns)),
			Total:      len(snap.Records),
			Matched:    len(matched),
			LoadFailed: snap.Err != nil,
		}
		for i, c := range columns {
			view.Headers[i] = c.Header
		}
		for _, rec := range matched {
			row := make([]listing.Cell, len(columns))
			for i, c := range columns {
				row[i] = listing.RenderCell(c, c.Lookup(rec))
			}
			view.Rows = append(view.Rows, row)
		}

		switch {
		case view.Total == 0:
			view.Empty = msgNoData
		case view.Matched == 0 && query != "":
			view.Empty = msgNoMatch
		case view.Matched == 0:
			view.Empty = msgNoResults
		}

		s.render(w, r, http.StatusOK, "overview.html", kind.Title, view)
	}
}

func (s *Server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	in := display.InputFromValues(r.URL.Query())
	values := display.Values(in)
	view := calculatorView{
		Form: calculatorForm{
			Deposit:      values.Get(display.KeyDeposit),
			Contribution: values.Get(display.KeyContribution),
			Years:        values.Get(display.KeyYears),
			Rate:         values.Get(display.KeyRate),
		},
		Years: in.Years,
	}

	result, err := s.projections.Project(r.Context(), service.SourceWeb, in)
	if err != nil {
		view.Error = err.Error()
		s.render(w, r, projectionStatus(err), "calculator.html", "Calculator", view)
		return
	}

	view.TotalPrincipal = display.Currency(result.Summary.TotalPrincipal)
	view.TotalInterest = display.Currency(result.Summary.TotalInterest)
	view.EndBalance = display.Currency(result.Summary.EndBalance)
	view.FromYear = result.Summary.StartYear
	view.ToYear = result.Summary.EndYear
	view.Chart = buildChart(service.ChartSeries(result))

	for _, p := range result.Breakdown {
		start := p.YearOffset == 0
		label := "Start"
		if !start {
			label = strconv.Itoa(calculations.CalendarYear(p, result.Summary.StartYear))
		}
		view.Rows = append(view.Rows, breakdownRow{
			Label:     label,
			Principal: display.Currency(p.Principal),
			Interest:  display.Currency(p.InterestAmount),
			Ratio:     display.Ratio(p.ProfitRatio, start),
			Balance:   display.Currency(p.Balance),
		})
	}

	s.render(w, r, http.StatusOK, "calculator.html", "Calculator", view)
}

func (s *Server) handleProjectionAPI(w http.ResponseWriter, r *http.Request) {
	in := display.InputFromValues(r.URL.Query())
	result, err := s.projections.Project(r.Context(), service.SourceAPI, in)
	if err != nil {
		writeJSON(w, projectionStatus(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, projectionResponse{
		Input:     result.Input,
		Summary:   result.Summary,
		Breakdown: result.Breakdown,
		Chart:     service.ChartSeries(result),
	})
}

func (s *Server) handleListingsAPI(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	snap, matched, err := s.catalog.Search(kind, r.URL.Query().Get("q"))
	if errors.Is(err, listing.ErrUnknownKind) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := listingsResponse{
		Kind:    kind,
		Total:   len(snap.Records),
		Matched: len(matched),
		Records: matched,
	}
	if resp.Records == nil {
		resp.Records = []listing.Record{}
	}
	if snap.Err != nil {
		resp.LoadError = snap.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if !s.catalog.Loaded() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("loading"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// projectionStatus maps service errors to HTTP status codes
func projectionStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrBalanceCap):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
