package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	kafkax "github.com/tiendazana/storefront-api/internal/kafka"
	"github.com/tiendazana/storefront-api/internal/orders"
	"github.com/tiendazana/storefront-api/internal/redisx"
)

// OrderRepo is the slice of orders.Repo the handler needs; tests swap in
// an in-memory implementation.
type OrderRepo interface {
	Snapshot(ctx context.Context) ([]orders.Product, error)
	CreateOrder(ctx context.Context, o *orders.Order, lines []orders.OrderLine) (string, error)
}

type Limiter interface {
	Allow(key string) bool
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type OrdersHandler struct {
	Repo     OrderRepo
	Limiter  Limiter
	Producer Publisher
	Redis    *redis.Client // optional: listing cache is skipped when nil
	Service  string
	Loc      *time.Location
}

type SubmitOrderReq struct {
	Cliente   *orders.Customer  `json:"cliente"`
	Productos []orders.CartLine `json:"productos"`
}

type PedidoResp struct {
	ID       string          `json:"id"`
	Fecha    string          `json:"fecha"`
	Total    decimal.Decimal `json:"total"`
	Subtotal decimal.Decimal `json:"subtotal"`
	ITBMS    decimal.Decimal `json:"itbms"`
	Estado   string          `json:"estado"`
}

// productView is the public listing shape; the cost column never leaves
// the server.
type productView struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	PrecioBase  decimal.Decimal `json:"precioBase"`
	Categoria   string          `json:"categoria"`
	Imagen      string          `json:"imagen"`
	Stock       int             `json:"stock"`
	Destacado   bool            `json:"destacado"`
	ItbmsPorc   decimal.Decimal `json:"itbmsPorc"`
	ItbmsMonto  decimal.Decimal `json:"itbmsMonto"`
	PrecioFinal decimal.Decimal `json:"precioFinal"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Post("/pedidos", h.createOrder)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}

func (h *OrdersHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, redisx.KeyProductsCache).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	ps, err := h.Repo.Snapshot(ctx)
	if err != nil {
		log.Printf("list products: %v", err)
		fail(w, http.StatusInternalServerError, "Error al obtener productos")
		return
	}

	views := make([]productView, 0, len(ps))
	for _, p := range ps {
		views = append(views, productView{
			ID:          p.ID,
			Nombre:      p.Name,
			Descripcion: p.Description,
			PrecioBase:  p.BasePrice,
			Categoria:   p.Category,
			Imagen:      p.Image,
			Stock:       p.Stock,
			Destacado:   p.Featured,
			ItbmsPorc:   p.TaxRatePercent,
			ItbmsMonto:  p.TaxAmount(),
			PrecioFinal: p.FinalPrice(),
		})
	}
	body, _ := json.Marshal(map[string]any{
		"success":   true,
		"productos": views,
		"total":     len(views),
	})
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, redisx.KeyProductsCache, body, redisx.TTLProductsCache).Err()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	// Collect every defect before touching catalog or quota.
	if errs := orders.ValidateSubmission(req.Cliente, req.Productos); len(errs) > 0 {
		fail(w, http.StatusBadRequest, joinErrs(errs))
		return
	}

	if !h.Limiter.Allow(clientKey(r)) {
		fail(w, http.StatusTooManyRequests, "Demasiados pedidos desde esta dirección, intenta más tarde")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	snapshot, err := h.Repo.Snapshot(ctx)
	if err != nil {
		log.Printf("catalog snapshot: %v", err)
		fail(w, http.StatusInternalServerError, "Error al procesar el pedido")
		return
	}

	if serr := orders.CheckStock(snapshot, req.Productos); serr != nil {
		fail(w, http.StatusBadRequest, serr.Error())
		return
	}

	lines, totals, err := orders.PriceCart(snapshot, req.Productos)
	if err != nil {
		log.Printf("price cart: %v", err)
		fail(w, http.StatusInternalServerError, "Error al procesar el pedido")
		return
	}

	o := &orders.Order{
		CreatedAt:       time.Now(),
		CustomerName:    req.Cliente.Name,
		CustomerEmail:   req.Cliente.Email,
		CustomerPhone:   req.Cliente.Phone,
		CustomerAddress: req.Cliente.Address,
		Subtotal:        totals.Subtotal,
		TaxTotal:        totals.TaxTotal,
		Total:           totals.Total,
	}
	orderID, err := h.Repo.CreateOrder(ctx, o, lines)
	if err != nil {
		var serr *orders.StockError
		if errors.As(err, &serr) {
			// Lost a race for stock since the snapshot; nothing was written.
			fail(w, http.StatusBadRequest, serr.Error())
			return
		}
		log.Printf("persist order: %v", err)
		fail(w, http.StatusInternalServerError, "Error al procesar el pedido")
		return
	}

	h.publishCreated(r, o, len(lines))

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"pedido": PedidoResp{
			ID:       orderID,
			Fecha:    orders.FormatFecha(o.CreatedAt, h.Loc),
			Total:    totals.Total.Round(2),
			Subtotal: totals.Subtotal.Round(2),
			ITBMS:    totals.TaxTotal.Round(2),
			Estado:   o.Status,
		},
	})
}

func (h *OrdersHandler) publishCreated(r *http.Request, o *orders.Order, items int) {
	if h.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: o.ID,
	}
	ev.Payload = kafkax.MustMarshal(orders.OrderCreatedPayload{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		Subtotal:     o.Subtotal,
		TaxTotal:     o.TaxTotal,
		Total:        o.Total,
		Items:        items,
		Status:       o.Status,
	})
	h.Producer.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func joinErrs(errs []string) string {
	out := errs[0]
	for _, e := range errs[1:] {
		out += "; " + e
	}
	return out
}

// clientKey identifies the submitting origin for rate limiting.
// middleware.RealIP has already resolved proxy headers into RemoteAddr.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
