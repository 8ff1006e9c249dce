package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/notas/internal/analytics"
	"github.com/MrJamesThe3rd/notas/internal/http/render"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

type Handler struct {
	svc *analytics.Service
}

func NewHandler(svc *analytics.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/monthly", h.monthly)
	r.Get("/suppliers", h.suppliers)
	r.Get("/report", h.report)
}

type summaryResponse struct {
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	InflowCount  int             `json:"inflow_count"`
	OutflowCount int             `json:"outflow_count"`
}

type supplierResponse struct {
	Supplier string          `json:"supplier"`
	Total    decimal.Decimal `json:"total"`
}

// reportResponse carries monthly_error instead of monthly when some record
// has no entry date; the other aggregates are still filled.
type reportResponse struct {
	Records      int                                         `json:"records"`
	Summary      summaryResponse                             `json:"summary"`
	Monthly      map[string]map[invoice.Kind]decimal.Decimal `json:"monthly"`
	MonthlyError string                                      `json:"monthly_error,omitempty"`
	Suppliers    []supplierResponse                          `json:"suppliers"`
}

func toSummary(s analytics.Summary) summaryResponse {
	return summaryResponse{
		TotalInflow:  s.TotalInflow,
		TotalOutflow: s.TotalOutflow,
		NetBalance:   s.NetBalance,
		InflowCount:  s.InflowCount,
		OutflowCount: s.OutflowCount,
	}
}

func toSuppliers(totals analytics.SupplierTotals) []supplierResponse {
	resp := make([]supplierResponse, 0, len(totals))
	for _, s := range totals.Ranked() {
		resp = append(resp, supplierResponse{Supplier: s.Supplier, Total: s.Amount})
	}

	return resp
}

// filtered returns the report for the request's filter, or nil when the
// request has none and the full record set should be used.
func (h *Handler) filtered(w http.ResponseWriter, r *http.Request) (*analytics.Report, bool) {
	filter, err := render.ListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	if render.IsZero(filter) {
		return nil, true
	}

	rep, err := h.svc.Report(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return nil, false
	}

	return rep, true
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.filtered(w, r)
	if !ok {
		return
	}

	if rep != nil {
		render.JSON(w, http.StatusOK, toSummary(rep.Summary))
		return
	}

	s, err := h.svc.Summary(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toSummary(s))
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.filtered(w, r)
	if !ok {
		return
	}

	if rep != nil {
		if rep.MonthlyErr != nil {
			render.Error(w, r, rep.MonthlyErr)
			return
		}

		render.JSON(w, http.StatusOK, rep.Monthly)
		return
	}

	m, err := h.svc.Monthly(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, m)
}

func (h *Handler) suppliers(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.filtered(w, r)
	if !ok {
		return
	}

	if rep != nil {
		render.JSON(w, http.StatusOK, toSuppliers(rep.Suppliers))
		return
	}

	totals, err := h.svc.BySupplier(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toSuppliers(totals))
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	filter, err := render.ListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := h.svc.Report(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := reportResponse{
		Records:   rep.Records,
		Summary:   toSummary(rep.Summary),
		Monthly:   rep.Monthly,
		Suppliers: toSuppliers(rep.Suppliers),
	}

	if rep.MonthlyErr != nil {
		resp.MonthlyError = rep.MonthlyErr.Error()
	}

	render.JSON(w, http.StatusOK, resp)
}
