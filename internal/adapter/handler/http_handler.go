package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/shoe-inventory/internal/core/domain"
	"github.com/rl1809/shoe-inventory/internal/core/service"
)

const requestIDHeader = "X-Request-ID"

type HTTPHandler struct {
	svc    *service.InventoryService
	logger *zap.Logger
}

type ShoeJSON struct {
	Country  string          `json:"country"`
	Code     string          `json:"code"`
	Product  string          `json:"product"`
	Cost     decimal.Decimal `json:"cost"`
	Quantity int             `json:"quantity"`
}

type ItemValueJSON struct {
	Product string `json:"product"`
	Code    string `json:"code"`
	Value   string `json:"value"`
}

type RestockHTTPRequest struct {
	Quantity int `json:"quantity"`
}

type HTTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func NewHTTPHandler(svc *service.InventoryService, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{svc: svc, logger: logger}
}

// Routes returns the mux with every endpoint behind the request ID middleware.
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /api/shoes", h.ListShoes)
	mux.HandleFunc("POST /api/shoes", h.AddShoe)
	mux.HandleFunc("GET /api/shoes/{code}", h.SearchShoe)
	mux.HandleFunc("POST /api/restock", h.RestockLowest)
	mux.HandleFunc("GET /api/value", h.ValuePerItem)
	mux.HandleFunc("GET /api/highest", h.Highest)
	return h.withRequestID(mux)
}

func (h *HTTPHandler) ListShoes(w http.ResponseWriter, r *http.Request) {
	shoes := []ShoeJSON{}
	for shoe := range h.svc.All() {
		shoes = append(shoes, toShoeJSON(shoe))
	}
	writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Data: shoes})
}

func (h *HTTPHandler) AddShoe(w http.ResponseWriter, r *http.Request) {
	var req ShoeJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}
	if req.Code == "" {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{
			Success: false,
			Message: "missing required fields",
		})
		return
	}

	shoe := domain.Shoe{
		Country:  req.Country,
		Code:     req.Code,
		Product:  req.Product,
		Cost:     req.Cost,
		Quantity: req.Quantity,
	}
	if err := h.svc.Add(r.Context(), shoe); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, HTTPResponse{
		Success: true,
		Message: "shoe added",
		Data:    toShoeJSON(shoe),
	})
}

func (h *HTTPHandler) SearchShoe(w http.ResponseWriter, r *http.Request) {
	shoe, err := h.svc.Search(r.PathValue("code"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Data: toShoeJSON(shoe)})
}

func (h *HTTPHandler) RestockLowest(w http.ResponseWriter, r *http.Request) {
	var req RestockHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, HTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	shoe, err := h.svc.RestockLowest(r.Context(), req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, HTTPResponse{
		Success: true,
		Message: "inventory updated",
		Data:    toShoeJSON(shoe),
	})
}

func (h *HTTPHandler) ValuePerItem(w http.ResponseWriter, r *http.Request) {
	values := []ItemValueJSON{}
	for _, v := range h.svc.ValuePerItem() {
		values = append(values, ItemValueJSON{Product: v.Product, Code: v.Code, Value: v.Formatted()})
	}
	writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Data: values})
}

func (h *HTTPHandler) Highest(w http.ResponseWriter, r *http.Request) {
	shoe, err := h.svc.Highest()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, HTTPResponse{Success: true, Data: toShoeJSON(shoe)})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !h.svc.Loaded() {
		status = "loading"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *HTTPHandler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(requestIDHeader, requestID)
		}
		w.Header().Set(requestIDHeader, requestID)

		h.logger.Debug("http request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r)
	})
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, domain.ErrNegativeValue):
		status = http.StatusBadRequest
		message = "cost and quantity must be non-negative"
	case errors.Is(err, domain.ErrMalformedField):
		status = http.StatusBadRequest
		message = "malformed field"
	case errors.Is(err, domain.ErrQuantityLimit):
		status = http.StatusBadRequest
		message = "quantity too large"
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = "shoe not found"
	case errors.Is(err, domain.ErrEmptyInventory):
		status = http.StatusConflict
		message = "inventory is empty"
	case errors.Is(err, domain.ErrNotLoaded):
		status = http.StatusServiceUnavailable
		message = "inventory not loaded"
	default:
		h.logger.Error("http request failed",
			zap.String("request_id", r.Header.Get(requestIDHeader)),
			zap.Error(err),
		)
	}

	writeJSON(w, status, HTTPResponse{Success: false, Message: message})
}

func toShoeJSON(shoe domain.Shoe) ShoeJSON {
	return ShoeJSON{
		Country:  shoe.Country,
		Code:     shoe.Code,
		Product:  shoe.Product,
		Cost:     shoe.Cost,
		Quantity: shoe.Quantity,
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
