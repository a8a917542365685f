// Package web serves the inventory single page UI.
package web

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"net/http"
	"time"
)

//go:embed index.html
var indexHTML []byte

// placeholder of the products endpoint in index.html, quotes included
var productsURLPlaceholder = []byte(`"__PRODUCTS_URL__"`)

// Handler renders the UI once for the given API base path and serves it.
func Handler(basePath string) (http.Handler, error) {
	productsURL, err := json.Marshal(basePath + "/products")
	if err != nil {
		return nil, err
	}
	content := bytes.ReplaceAll(indexHTML, productsURLPlaceholder, productsURL)
	modTime := time.Now()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(w, r, "index.html", modTime, bytes.NewReader(content))
	}), nil
}
