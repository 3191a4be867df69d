package order

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tableorder-be/internal/transport"

	"github.com/gorilla/mux"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts order routes. Registration order matters: mux matches in
// the order routes are added, so the literal paths (tables/unpaid,
// serve-batch, pay, cancel-table) must go in before their parametrized
// siblings or a literal segment gets captured as a path variable.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/orders", h.listActiveOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders", h.createOrders).Methods(http.MethodPost)
	r.HandleFunc("/orders/unpaid", h.listUnpaidOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/tables/unpaid", h.listUnpaidTableGroups).Methods(http.MethodGet)
	r.HandleFunc("/orders/tables", h.listTableGroups).Methods(http.MethodGet)
	r.HandleFunc("/orders/tables/{tableNo}", h.listOrdersByTable).Methods(http.MethodGet)
	r.HandleFunc("/orders/menus", h.listMenuGroups).Methods(http.MethodGet)
	r.HandleFunc("/orders/menus/{menuName}", h.listOrdersByMenu).Methods(http.MethodGet)
	r.HandleFunc("/orders/serve-batch", h.updateServeStatusBatch).Methods(http.MethodPatch)
	r.HandleFunc("/orders/pay", h.payTable).Methods(http.MethodPatch)
	r.HandleFunc("/orders/cancel-table", h.cancelTable).Methods(http.MethodPatch)
	r.HandleFunc("/orders/{id}/serve", h.updateServeStatus).Methods(http.MethodPatch)
	r.HandleFunc("/orders/{id}/cancel", h.cancelOrder).Methods(http.MethodPatch)
}

func (h *Handler) listActiveOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.GetActiveOrders(r.Context())
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	transport.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) listUnpaidOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.GetUnpaidOrders(r.Context())
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Failed to fetch unpaid orders")
		return
	}
	transport.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) listTableGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.GetTableGroups(r.Context())
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Failed to fetch tables")
		return
	}
	transport.WriteJSON(w, http.StatusOK, groups)
}

func (h *Handler) listUnpaidTableGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.GetUnpaidTableGroups(r.Context())
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Failed to fetch unpaid tables")
		return
	}
	transport.WriteJSON(w, http.StatusOK, groups)
}

func (h *Handler) listOrdersByTable(w http.ResponseWriter, r *http.Request) {
	tableNo := mux.Vars(r)["tableNo"]

	orders, err := h.svc.GetOrdersByTable(r.Context(), tableNo)
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Failed to fetch table orders")
		return
	}
	transport.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) listMenuGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.GetMenuGroups(r.Context())
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Failed to fetch menu orders")
		return
	}
	transport.WriteJSON(w, http.StatusOK, groups)
}

func (h *Handler) listOrdersByMenu(w http.ResponseWriter, r *http.Request) {
	menuName := mux.Vars(r)["menuName"]

	orders, err := h.svc.GetOrdersByMenu(r.Context(), menuName)
	if err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Failed to fetch menu orders")
		return
	}
	transport.WriteJSON(w, http.StatusOK, orders)
}

// createOrders accepts either a single order object or {"orders": [...]}
// for a whole-table submission.
func (h *Handler) createOrders(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var batch struct {
		Orders []CreateOrderInput `json:"orders"`
	}
	if err := json.Unmarshal(raw, &batch); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if batch.Orders != nil {
		created, err := h.svc.CreateOrders(r.Context(), batch.Orders)
		if err != nil {
			h.writeCreateError(w, err)
			return
		}
		transport.WriteJSON(w, http.StatusCreated, created)
		return
	}

	var in CreateOrderInput
	if err := json.Unmarshal(raw, &in); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.svc.CreateOrder(r.Context(), in)
	if err != nil {
		h.writeCreateError(w, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) writeCreateError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInput) {
		transport.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	transport.WriteError(w, http.StatusInternalServerError, "Failed to create order")
}

func (h *Handler) updateServeStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var body struct {
		ServeYn string `json:"serveYn"`
	}
	if !transport.DecodeJSON(w, r, &body) {
		return
	}

	o, err := h.svc.UpdateServeStatus(r.Context(), id, body.ServeYn)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			transport.WriteError(w, http.StatusBadRequest, "Invalid serve status")
		case errors.Is(err, ErrOrderNotFound):
			transport.WriteError(w, http.StatusNotFound, "Order not found")
		default:
			transport.WriteError(w, http.StatusInternalServerError, "Failed to update serve status")
		}
		return
	}

	transport.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) updateServeStatusBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderIDs []string `json:"orderIds"`
		ServeYn  string   `json:"serveYn"`
	}
	if !transport.DecodeJSON(w, r, &body) {
		return
	}

	if len(body.OrderIDs) == 0 {
		transport.WriteError(w, http.StatusBadRequest, "Invalid order IDs")
		return
	}

	if err := h.svc.UpdateServeStatusBatch(r.Context(), body.OrderIDs, body.ServeYn); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			transport.WriteError(w, http.StatusBadRequest, "Invalid serve status")
			return
		}
		transport.WriteError(w, http.StatusInternalServerError, "Failed to batch update serve status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) payTable(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TableNo string `json:"tableNo"`
		PayYn   string `json:"payYn"`
	}
	if !transport.DecodeJSON(w, r, &body) {
		return
	}

	if err := h.svc.PayTable(r.Context(), body.TableNo, body.PayYn); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			transport.WriteError(w, http.StatusBadRequest, "Invalid pay status")
			return
		}
		transport.WriteError(w, http.StatusInternalServerError, "Failed to update pay status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	o, err := h.svc.CancelOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			transport.WriteError(w, http.StatusNotFound, "Order not found")
			return
		}
		transport.WriteError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	transport.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) cancelTable(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TableNo string `json:"tableNo"`
	}
	if !transport.DecodeJSON(w, r, &body) {
		return
	}

	if body.TableNo == "" {
		transport.WriteError(w, http.StatusBadRequest, "Table number is required")
		return
	}

	if err := h.svc.CancelTable(r.Context(), body.TableNo); err != nil {
		transport.WriteError(w, http.StatusInternalServerError, "Failed to cancel table orders")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
