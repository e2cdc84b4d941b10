package restserver

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/chrissnell/climate/pkg/responseformat"
	"github.com/gorilla/mux"
)

// The served climate never changes during the life of the process.
var cacheHeaders = map[string]string{
	"Cache-Control": "max-age=3600",
}

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// ClimateSummary describes a run without its per-day and per-year data
type ClimateSummary struct {
	RunID    string `json:"run_id"`
	LastDate string `json:"last_date"`
	Rows     int    `json:"rows"`
	Skipped  int    `json:"skipped"`
	Days     int    `json:"days"`
	Years    int    `json:"years"`
}

// GetClimate returns a summary of the served run
func (h *Handlers) GetClimate(w http.ResponseWriter, req *http.Request) {
	c := h.controller.Climate
	summary := ClimateSummary{
		RunID:    c.RunID,
		LastDate: c.LastDate,
		Rows:     c.Rows,
		Skipped:  c.Skipped,
		Days:     len(c.Days),
		Years:    len(c.Years),
	}
	h.write(w, req, summary)
}

// GetDays returns the climate of every calendar day
func (h *Handlers) GetDays(w http.ResponseWriter, req *http.Request) {
	h.write(w, req, h.controller.Climate.Days)
}

// GetDay returns the climate of one calendar day
func (h *Handlers) GetDay(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	month, _ := strconv.Atoi(vars["month"])
	day, _ := strconv.Atoi(vars["day"])
	key := fmt.Sprintf("%02d/%02d", month, day)

	days := h.controller.Climate.Days
	i := sort.Search(len(days), func(i int) bool { return days[i].MonthDay >= key })
	if i == len(days) || days[i].MonthDay != key {
		http.Error(w, "no climate for day "+key, http.StatusNotFound)
		return
	}

	h.write(w, req, days[i])
}

// GetYears returns the extremes of every year
func (h *Handlers) GetYears(w http.ResponseWriter, req *http.Request) {
	h.write(w, req, h.controller.Climate.Years)
}

// GetYear returns the extremes of one year
func (h *Handlers) GetYear(w http.ResponseWriter, req *http.Request) {
	year, err := strconv.Atoi(mux.Vars(req)["year"])
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	years := h.controller.Climate.Years
	i := sort.Search(len(years), func(i int) bool { return years[i].Year >= year })
	if i == len(years) || years[i].Year != year {
		http.Error(w, fmt.Sprintf("no climate for year %d", year), http.StatusNotFound)
		return
	}

	h.write(w, req, years[i])
}

func (h *Handlers) write(w http.ResponseWriter, req *http.Request, data any) {
	if err := h.formatter.WriteResponse(w, req, data, cacheHeaders); err != nil {
		h.controller.logger.Errorw("error encoding response", "path", req.URL.Path, "error", err)
	}
}
