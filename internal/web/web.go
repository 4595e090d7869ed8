// Package web serves the single static page of the service.
package web

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexPage []byte

// Handler serves the book page.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(indexPage)
	})
}
