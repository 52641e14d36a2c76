// Package swaggerkit mounts the Swagger UI and a served OpenAPI document
package swaggerkit

import (
	"net/http"
	"sync"

	phttp "glossrank/internal/platform/net/http"

	"github.com/goccy/go-json"
)

const (
	uiPrefix = "/api/docs"
	docPath  = "/api/docs/doc.json"
)

// SpecMutator lets modules add their paths to the served document
type SpecMutator func(map[string]any)

var (
	mu       sync.Mutex
	mutators []SpecMutator
)

// Register adds a spec mutator, nil is ignored
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// Mount serves the UI under /api/docs and the document at /api/docs/doc.json
func Mount(r phttp.Router, enabled bool, title, version string) {
	if !enabled {
		return
	}
	r.Get(docPath, serveDoc(title, version))
	phttp.MountSwagger(r, uiPrefix, docPath, true)
}

// Document builds the current document from the skeleton plus registered mutators
func Document(title, version string) map[string]any {
	doc := map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": title, "version": version},
		"paths":   map[string]any{},
	}
	mu.Lock()
	ms := append([]SpecMutator(nil), mutators...)
	mu.Unlock()
	for _, m := range ms {
		m(doc)
	}
	return doc
}

// AddPath is a SpecMutator helper that sets one path item
func AddPath(path, method, summary string) SpecMutator {
	return func(doc map[string]any) {
		paths, _ := doc["paths"].(map[string]any)
		if paths == nil {
			paths = map[string]any{}
			doc["paths"] = paths
		}
		item, _ := paths[path].(map[string]any)
		if item == nil {
			item = map[string]any{}
			paths[path] = item
		}
		item[method] = map[string]any{
			"summary":   summary,
			"responses": map[string]any{"200": map[string]any{"description": "OK"}},
		}
	}
}

func serveDoc(title, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		b, err := json.Marshal(Document(title, version))
		if err != nil {
			http.Error(w, "swagger document unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(b)
	}
}
