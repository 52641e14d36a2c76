package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger mounts the swagger UI under prefix when enabled; docURL points at the doc JSON
func MountSwagger(r Router, prefix, docURL string, enabled bool) {
	if !enabled {
		return
	}
	r.Handle(prefix+"/*", httpSwagger.Handler(httpSwagger.URL(docURL)))
	r.Get(prefix, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, prefix+"/index.html", http.StatusMovedPermanently)
	})
}
