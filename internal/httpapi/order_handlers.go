package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"bizdash-be/internal/export"
	"bizdash-be/internal/order"
	"bizdash-be/internal/pricing"
	"bizdash-be/internal/utils"
)

func orderFilter(r *http.Request) order.Filter {
	var f order.Filter
	if v, ok := queryParam(r, "deliveryStatus"); ok {
		s := pricing.DeliveryStatus(v)
		f.DeliveryStatus = &s
	}
	if v, ok := queryParam(r, "paymentStatus"); ok {
		s := order.PaymentStatus(v)
		f.PaymentStatus = &s
	}
	return f
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	if id, ok := queryID(r); ok {
		o, err := h.orders.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, o)
		return
	}

	orders, err := h.orders.List(r.Context(), orderFilter(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in order.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.orders.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handlers) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		writeError(w, r, errMissingID)
		return
	}

	var in order.Input
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	o, changes, err := h.orders.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"order": o, "changes": changes})
}

func (h *Handlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(r)
	if !ok {
		writeError(w, r, errMissingID)
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handlers) QuoteOrder(w http.ResponseWriter, r *http.Request) {
	var in order.QuoteInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	q, err := h.orders.Quote(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, q)
}

// ExportOrders streams the filtered order list as a workbook. It is rendered
// into memory first so a failure still produces a JSON error.
func (h *Handlers) ExportOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context(), orderFilter(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteOrders(&buf, orders); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.OrdersFilename(h.now())))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handlers) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}
