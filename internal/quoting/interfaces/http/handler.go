package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"movequote-cloud/internal/audit"
	"movequote-cloud/internal/auth"
	"movequote-cloud/internal/observability/metrics"
	pricing "movequote-cloud/internal/pricing/domain"
	quotingapp "movequote-cloud/internal/quoting/application"
	quoting "movequote-cloud/internal/quoting/domain"
	"movequote-cloud/internal/quoting/interfaces"
	"movequote-cloud/internal/routing"
)

const (
	basePath     = "/api/v1/quotes"
	dateLayout   = "2006-01-02"
	exportPDF    = "/export.pdf"
	exportXLSX   = "/export.xlsx"
	defaultLimit = 50
)

// QuoteHandler provides quote HTTP endpoints.
type QuoteHandler struct {
	service        *quotingapp.QuoteService
	companyChecker auth.CompanyTenantChecker
	auditLogger    audit.Logger
	defaultTenant  string
}

// NewQuoteHandler constructs a handler. The default tenant is used for
// customer-facing requests that carry no token.
func NewQuoteHandler(service *quotingapp.QuoteService, companyChecker auth.CompanyTenantChecker, auditLogger audit.Logger, defaultTenant string) (*QuoteHandler, error) {
	if service == nil {
		return nil, errors.New("quote handler: nil service")
	}
	return &QuoteHandler{service: service, companyChecker: companyChecker, auditLogger: auditLogger, defaultTenant: defaultTenant}, nil
}

// ServeHTTP routes quote endpoints:
//
//	POST /api/v1/quotes/calculate
//	POST /api/v1/quotes
//	GET  /api/v1/quotes
//	GET  /api/v1/quotes/{id}
//	GET  /api/v1/quotes/{id}/export.pdf
//	GET  /api/v1/quotes/{id}/export.xlsx
func (h *QuoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == basePath+"/calculate":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleCalculate(w, r)
	case path == basePath:
		switch r.Method {
		case http.MethodPost:
			h.handleSubmit(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case strings.HasPrefix(path, basePath+"/"):
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(path, basePath+"/")
		switch {
		case strings.HasSuffix(rest, exportPDF):
			h.handleExport(w, r, strings.TrimSuffix(rest, exportPDF), "pdf")
		case strings.HasSuffix(rest, exportXLSX):
			h.handleExport(w, r, strings.TrimSuffix(rest, exportXLSX), "xlsx")
		default:
			h.handleGet(w, r, rest)
		}
	default:
		http.NotFound(w, r)
	}
}

// quoteRequest is the wire shape shared by calculate and submit.
type quoteRequest struct {
	CompanySlug   string                  `json:"company_slug,omitempty"`
	Origin        pricing.Endpoint        `json:"origin"`
	Destination   pricing.Endpoint        `json:"destination"`
	ApartmentSize string                  `json:"apartment_size,omitempty"`
	VolumeM3      decimal.Decimal         `json:"volume_m3"`
	MoveDate      string                  `json:"move_date,omitempty"`
	Services      []pricing.Service       `json:"services,omitempty"`
	Inventory     []pricing.InventoryItem `json:"inventory,omitempty"`
	CustomerName  string                  `json:"customer_name,omitempty"`
	CustomerEmail string                  `json:"customer_email,omitempty"`
	CustomerPhone string                  `json:"customer_phone,omitempty"`
}

func (h *QuoteHandler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, err := decodeQuoteRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		metrics.ObserveQuoteCalculate(metrics.ResultError, time.Since(start))
		return
	}

	tenantID := h.tenantFor(r)
	if err := h.ensureCompanyTenant(r, tenantID, req.CompanySlug); err != nil {
		respondTenantError(w, err)
		metrics.ObserveQuoteCalculate(metrics.ResultError, time.Since(start))
		return
	}

	input, err := req.toCalculateInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		metrics.ObserveQuoteCalculate(metrics.ResultError, time.Since(start))
		return
	}

	result, err := h.service.Calculate(r.Context(), tenantID, input)
	if err != nil {
		respondQuoteError(w, err)
		metrics.ObserveQuoteCalculate(metrics.ResultError, time.Since(start))
		return
	}
	writeJSON(w, http.StatusOK, result)
	metrics.ObserveQuoteCalculate(metrics.ResultSuccess, time.Since(start))
}

func (h *QuoteHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, err := decodeQuoteRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		metrics.ObserveQuoteSubmit(metrics.ResultError, time.Since(start))
		return
	}
	if req.CustomerEmail == "" {
		http.Error(w, "customer_email is required", http.StatusBadRequest)
		metrics.ObserveQuoteSubmit(metrics.ResultError, time.Since(start))
		return
	}

	tenantID := h.tenantFor(r)
	if err := h.ensureCompanyTenant(r, tenantID, req.CompanySlug); err != nil {
		respondTenantError(w, err)
		metrics.ObserveQuoteSubmit(metrics.ResultError, time.Since(start))
		return
	}

	input, err := req.toCalculateInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		metrics.ObserveQuoteSubmit(metrics.ResultError, time.Since(start))
		return
	}

	quote, err := h.service.Submit(r.Context(), tenantID, quotingapp.SubmitInput{
		CalculateInput: input,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
	})
	if err != nil {
		respondQuoteError(w, err)
		metrics.ObserveQuoteSubmit(metrics.ResultError, time.Since(start))
		return
	}
	writeJSON(w, http.StatusCreated, toQuoteResponse(quote))
	metrics.ObserveQuoteSubmit(metrics.ResultSuccess, time.Since(start))

	h.logAudit(r, tenantID, quote)
}

func (h *QuoteHandler) handleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := parseLimit(raw)
		if err != nil {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	quotes, err := h.service.List(r.Context(), h.tenantFor(r), limit)
	if err != nil {
		respondQuoteError(w, err)
		return
	}
	responses := make([]quoteResponse, 0, len(quotes))
	for _, quote := range quotes {
		responses = append(responses, toQuoteResponse(quote))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *QuoteHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	quote, err := h.service.Get(r.Context(), h.tenantFor(r), id)
	if err != nil {
		respondQuoteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteResponse(quote))
}

func (h *QuoteHandler) handleExport(w http.ResponseWriter, r *http.Request, id, format string) {
	start := time.Now()
	quote, err := h.service.Get(r.Context(), h.tenantFor(r), id)
	if err != nil {
		respondQuoteError(w, err)
		metrics.ObserveQuoteExport(format, metrics.ResultError, time.Since(start))
		return
	}

	var payload []byte
	var contentType, filename string
	switch format {
	case "pdf":
		payload, err = interfaces.BuildQuotePDF(quote)
		contentType = "application/pdf"
		filename = "quote-" + quote.ID + ".pdf"
	case "xlsx":
		payload, err = interfaces.BuildQuoteXLSX(quote)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "quote-" + quote.ID + ".xlsx"
	default:
		http.Error(w, "unsupported export format", http.StatusBadRequest)
		metrics.ObserveQuoteExport(format, metrics.ResultError, time.Since(start))
		return
	}
	if err != nil {
		http.Error(w, "export error", http.StatusInternalServerError)
		metrics.ObserveQuoteExport(format, metrics.ResultError, time.Since(start))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
	metrics.ObserveQuoteExport(format, metrics.ResultSuccess, time.Since(start))
}

func (h *QuoteHandler) tenantFor(r *http.Request) string {
	if tenantID := auth.TenantIDFromContext(r.Context()); tenantID != "" {
		return tenantID
	}
	return h.defaultTenant
}

func (h *QuoteHandler) ensureCompanyTenant(r *http.Request, tenantID, slug string) error {
	if slug == "" {
		return nil
	}
	if identity, ok := auth.IdentityFromContext(r.Context()); ok && !identity.AllowsCompany(slug) {
		return auth.ErrTenantMismatch
	}
	if h.companyChecker == nil || tenantID == "" {
		return nil
	}
	// Unknown slugs fall back to default rates in the service; only a slug
	// claimed by another tenant is rejected here.
	err := h.companyChecker.EnsureCompanyTenant(r.Context(), tenantID, slug)
	if errors.Is(err, auth.ErrNotFound) {
		return nil
	}
	return err
}

func (h *QuoteHandler) logAudit(r *http.Request, tenantID string, quote *quoting.Quote) {
	if h.auditLogger == nil || quote == nil {
		return
	}
	details, _ := json.Marshal(map[string]any{
		"customer_email": quote.CustomerMail,
		"net_min":        quote.Result.NetMin.String(),
		"net_max":        quote.Result.NetMax.String(),
	})
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		TenantID:    tenantID,
		Actor:       auth.SubjectFromContext(r.Context()),
		ActorRole:   string(auth.RoleFromContext(r.Context())),
		Action:      "quote.submit",
		QuoteID:     quote.ID,
		CompanySlug: quote.CompanySlug,
		Details:     details,
		IP:          audit.ClientIP(r),
		UserAgent:   r.UserAgent(),
	})
}

func decodeQuoteRequest(r *http.Request) (quoteRequest, error) {
	var req quoteRequest
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return req, errors.New("read body error")
	}
	defer r.Body.Close()
	if err := json.Unmarshal(body, &req); err != nil {
		return req, errors.New("invalid json")
	}
	return req, nil
}

func (q quoteRequest) toCalculateInput() (quotingapp.CalculateInput, error) {
	input := quotingapp.CalculateInput{
		CompanySlug:       q.CompanySlug,
		OriginPostal:      q.Origin.PostalCode,
		DestinationPostal: q.Destination.PostalCode,
		ApartmentSize:     q.ApartmentSize,
		VolumeM3:          q.VolumeM3,
		OriginFloor:       q.Origin.Floor,
		OriginElevator:    q.Origin.HasElevator,
		DestFloor:         q.Destination.Floor,
		DestElevator:      q.Destination.HasElevator,
		Services:          q.Services,
		Inventory:         q.Inventory,
	}
	if q.MoveDate != "" {
		moveDate, err := time.Parse(dateLayout, q.MoveDate)
		if err != nil {
			return input, errors.New("move_date must be YYYY-MM-DD")
		}
		input.MoveDate = moveDate
	}
	return input, nil
}

// quoteResponse is the wire shape for persisted quotes.
type quoteResponse struct {
	ID            string              `json:"id"`
	CompanySlug   string              `json:"company_slug,omitempty"`
	CustomerName  string              `json:"customer_name,omitempty"`
	CustomerEmail string              `json:"customer_email"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	Origin        pricing.Endpoint    `json:"origin"`
	Destination   pricing.Endpoint    `json:"destination"`
	DistanceKm    decimal.Decimal     `json:"distance_km"`
	VolumeM3      decimal.Decimal     `json:"volume_m3"`
	MoveDate      string              `json:"move_date,omitempty"`
	Result        pricing.QuoteResult `json:"result"`
	CreatedAt     time.Time           `json:"created_at"`
}

func toQuoteResponse(quote *quoting.Quote) quoteResponse {
	resp := quoteResponse{
		ID:            quote.ID,
		CompanySlug:   quote.CompanySlug,
		CustomerName:  quote.CustomerName,
		CustomerEmail: quote.CustomerMail,
		CustomerPhone: quote.CustomerTel,
		Origin:        quote.Origin,
		Destination:   quote.Destination,
		DistanceKm:    quote.DistanceKm,
		VolumeM3:      quote.VolumeM3,
		Result:        quote.Result,
		CreatedAt:     quote.CreatedAt,
	}
	if !quote.MoveDate.IsZero() {
		resp.MoveDate = quote.MoveDate.Format(dateLayout)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondQuoteError(w http.ResponseWriter, err error) {
	var validationErr *pricing.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, quotingapp.ErrMissingVolume),
		errors.Is(err, quotingapp.ErrUnknownApartmentSize):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, quoting.ErrQuoteNotFound), errors.Is(err, quoting.ErrEmptyID):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, routing.ErrRouteUnavailable):
		http.Error(w, "route unavailable", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func respondTenantError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, auth.ErrTenantMismatch) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if errors.Is(err, auth.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.Error(w, "tenant check failed", http.StatusInternalServerError)
}

func parseLimit(raw string) (int, error) {
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if limit <= 0 {
		return 0, errors.New("not positive")
	}
	return limit, nil
}
