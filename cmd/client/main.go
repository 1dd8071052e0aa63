package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"storefront/internal"
)

// Default server base URL; can override with STOREFRONT_SERVER env var or --server flag.
var serverBaseURL = "http://localhost:8080"

var httpClient = &http.Client{Timeout: 10 * time.Second}

func main() {
	cmd := flag.String("cmd", "catalog", "Command: catalog|detail|add|cart|set|inc|dec|remove|clear|favs|fav|unfav|pay|orders")
	id := flag.String("id", "", "Product ID")
	qty := flag.String("qty", "1", "Quantity (add, set)")
	code := flag.String("code", "", "Six-digit verification code (pay)")
	confirm := flag.Bool("confirm", false, "Add again when the product is already in the cart or favorites")
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://shop.example.com)")
	flag.Parse()
	if env := os.Getenv("STOREFRONT_SERVER"); env != "" {
		serverBaseURL = strings.TrimRight(env, "/")
	}
	if *serverFlag != "" {
		serverBaseURL = strings.TrimRight(*serverFlag, "/")
	}

	if err := dispatch(*cmd, *id, *qty, *code, *confirm); err != nil {
		var pe *internal.PromptError
		if errors.As(err, &pe) && pe.Prompt {
			fmt.Println(pe.Message + ". Run again with --confirm to add it anyway.")
			os.Exit(2)
		}
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func dispatch(cmd, id, qty, code string, confirm bool) error {
	needID := map[string]bool{"detail": true, "add": true, "set": true, "inc": true, "dec": true, "remove": true, "fav": true, "unfav": true}
	if needID[cmd] && id == "" {
		return errors.New("--id required")
	}
	switch cmd {
	case "catalog":
		var items []internal.CatalogItem
		if err := call(http.MethodGet, "/products", nil, &items); err != nil {
			return err
		}
		for _, it := range items {
			fmt.Printf("%-3s %-16s %10s  %s\n", it.ID, it.Name, it.Price, it.StockLabel)
		}
		return nil
	case "detail":
		var it internal.CatalogItem
		if err := call(http.MethodGet, "/products/"+id, nil, &it); err != nil {
			return err
		}
		fmt.Printf("%s\n%s\nPrice: %s %s\n%s\n", it.Name, it.Description, it.Price, it.Price.Currency, it.StockLabel)
		return nil
	case "add":
		var line internal.CartLine
		body := map[string]any{"product_id": id, "quantity": qty, "confirm": confirm}
		if err := call(http.MethodPost, "/cart", body, &line); err != nil {
			return err
		}
		fmt.Printf("%d x %s added to the cart.\n", line.Quantity, line.Product.Name)
		return nil
	case "cart":
		return showCart()
	case "set":
		n, err := internal.ParseQuantity(qty)
		if err != nil {
			return err
		}
		return stepQuantity(http.MethodPatch, "/cart/"+id, map[string]int{"quantity": n})
	case "inc":
		return stepQuantity(http.MethodPost, "/cart/"+id+"/increase", nil)
	case "dec":
		return stepQuantity(http.MethodPost, "/cart/"+id+"/decrease", nil)
	case "remove":
		if err := call(http.MethodDelete, "/cart/"+id, nil, nil); err != nil {
			return err
		}
		return showCart()
	case "clear":
		return call(http.MethodDelete, "/cart", nil, nil)
	case "favs":
		var favs []internal.Product
		if err := call(http.MethodGet, "/favorites", nil, &favs); err != nil {
			return err
		}
		if len(favs) == 0 {
			fmt.Println("No favorites yet.")
		}
		for _, p := range favs {
			fmt.Printf("%-3s %-16s %10s\n", p.ID, p.Name, p.Price)
		}
		return nil
	case "fav":
		var p internal.Product
		if err := call(http.MethodPost, "/favorites", map[string]any{"product_id": id, "confirm": confirm}, &p); err != nil {
			return err
		}
		fmt.Printf("%s added to favorites.\n", p.Name)
		return nil
	case "unfav":
		return call(http.MethodDelete, "/favorites/"+id, nil, nil)
	case "pay":
		var res internal.CheckoutResult
		if err := call(http.MethodPost, "/checkout", map[string]string{"code": code}, &res); err != nil {
			return err
		}
		if res.Order.ID == "" {
			fmt.Println("Payment completed.")
		} else {
			fmt.Printf("Payment completed. Order %s, total %s %s.\n", res.Order.ID, res.Order.Total, res.Order.Total.Currency)
		}
		return dispatch(res.Next, "", "", "", false)
	case "orders":
		var orders []internal.Order
		if err := call(http.MethodGet, "/orders", nil, &orders); err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("%s  %s  %s %s  (%d lines)\n", o.PlacedAt.Local().Format(time.DateTime), o.ID, o.Total, o.Total.Currency, len(o.Lines))
		}
		return nil
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func showCart() error {
	var cart internal.CartView
	if err := call(http.MethodGet, "/cart", nil, &cart); err != nil {
		return err
	}
	if len(cart.Lines) == 0 {
		fmt.Println("The cart is empty.")
	}
	for _, l := range cart.Lines {
		fmt.Printf("%-3s %-16s %3d x %10s\n", l.Product.ID, l.Product.Name, l.Quantity, l.Product.Price)
	}
	fmt.Printf("Total: %s %s\n", cart.Total, cart.Total.Currency)
	return nil
}

func stepQuantity(method, path string, body any) error {
	var line internal.CartLine
	if err := call(method, path, body, &line); err != nil {
		return err
	}
	fmt.Printf("%s quantity is now %d.\n", line.Product.Name, line.Quantity)
	return nil
}

// ===== Helpers =====

func call(method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, serverBaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return internal.DecodeError(resp.StatusCode, b)
	}
	if out == nil || len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode server response: %w", err)
	}
	return nil
}
