package internal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ===== Handlers =====

// API exposes a Shop over JSON HTTP.
type API struct {
	shop *Shop
	log  *slog.Logger
}

func NewAPI(shop *Shop, log *slog.Logger) *API {
	if log == nil {
		log = slog.Default()
	}
	return &API{shop: shop, log: log}
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	// Quantity is the raw text typed by the shopper.
	Quantity string `json:"quantity"`
	Confirm  bool   `json:"confirm"`
}

type addToFavoritesRequest struct {
	ProductID string `json:"product_id"`
	Confirm   bool   `json:"confirm"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	Code string `json:"code"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Prompt bool   `json:"prompt,omitempty"`
}

func (a *API) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.shop.Catalog())
}

func (a *API) GetProduct(w http.ResponseWriter, r *http.Request) {
	item, err := a.shop.Detail(mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.shop.Cart())
}

func (a *API) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		http.Error(w, `{"error":"invalid request"}`, http.StatusBadRequest)
		return
	}
	line, err := a.shop.AddToCart(req.ProductID, req.Quantity, req.Confirm)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

func (a *API) ClearCart(w http.ResponseWriter, r *http.Request) {
	a.shop.ClearCart()
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request"}`, http.StatusBadRequest)
		return
	}
	line, err := a.shop.SetQuantity(mux.Vars(r)["id"], req.Quantity)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (a *API) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	line, err := a.shop.IncreaseQuantity(mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (a *API) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	line, err := a.shop.DecreaseQuantity(mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (a *API) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	a.shop.RemoveFromCart(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) ListFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.shop.Favorites())
}

func (a *API) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	var req addToFavoritesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		http.Error(w, `{"error":"invalid request"}`, http.StatusBadRequest)
		return
	}
	p, err := a.shop.AddToFavorites(req.ProductID, req.Confirm)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (a *API) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	a.shop.RemoveFromFavorites(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request"}`, http.StatusBadRequest)
		return
	}
	res, err := a.shop.Checkout(r.Context(), req.Code)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) ListOrders(w http.ResponseWriter, r *http.Request) {
	n := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if l, err := strconv.Atoi(s); err == nil {
			n = l
		}
	}
	orders, err := a.shop.RecentOrders(r.Context(), n)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// ===== Router =====

func (a *API) Router(middleware ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("OK")) }).Methods("GET")

	r.HandleFunc("/products", a.ListProducts).Methods("GET")
	r.HandleFunc("/products/{id}", a.GetProduct).Methods("GET")

	r.HandleFunc("/cart", a.GetCart).Methods("GET")
	r.HandleFunc("/cart", a.AddToCart).Methods("POST")
	r.HandleFunc("/cart", a.ClearCart).Methods("DELETE")
	r.HandleFunc("/cart/{id}", a.SetQuantity).Methods("PATCH")
	r.HandleFunc("/cart/{id}", a.RemoveFromCart).Methods("DELETE")
	r.HandleFunc("/cart/{id}/increase", a.IncreaseQuantity).Methods("POST")
	r.HandleFunc("/cart/{id}/decrease", a.DecreaseQuantity).Methods("POST")

	r.HandleFunc("/favorites", a.ListFavorites).Methods("GET")
	r.HandleFunc("/favorites", a.AddToFavorites).Methods("POST")
	r.HandleFunc("/favorites/{id}", a.RemoveFromFavorites).Methods("DELETE")

	r.HandleFunc("/checkout", a.Checkout).Methods("POST")
	r.HandleFunc("/orders", a.ListOrders).Methods("GET")

	r.Use(middleware...)
	return r
}

// ===== Helpers =====

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	if pe, ok := AsPrompt(err); ok {
		writeJSON(w, pe.Code, errorResponse{Error: pe.Message, Prompt: pe.Prompt})
		return
	}
	a.log.Error("request failed", slog.Any("err", err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// DecodeError turns an API error body back into an error value.
func DecodeError(status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		return errors.New(http.StatusText(status))
	}
	return &PromptError{Code: status, Message: er.Error, Prompt: er.Prompt}
}
