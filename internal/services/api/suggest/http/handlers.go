// Package http provides the suggestion endpoints
package http

import (
	stdhttp "net/http"

	"glossrank/internal/modkit/httpkit"
	"glossrank/internal/services/suggest/domain"
)

// Register mounts the suggestion routes
func Register(r httpkit.Router, s domain.Suggester) {
	h := &handlers{svc: s}

	// existing item or upstream meanings for one abbreviation
	httpkit.GetQuery[LookupQuery](r, "/", h.lookup)

	// entries proposed from free text
	httpkit.PostJSON[domain.GenerateRequest](r, "/generate", h.generate)
}

type handlers struct{ svc domain.Suggester }

// LookupQuery names the abbreviation to look up
type LookupQuery struct {
	Abbreviation string `query:"abbreviation" validate:"required,max=100"`
}

// swagger:route GET /suggestions Suggestions suggestionsLookup
// @Summary Existing entry or upstream meanings for an abbreviation
// @Tags Suggestions
// @Produce json
// @Param abbreviation query string true "abbreviation"
// @Success 200 type domain.Lookup ok
// @Router /suggestions [get]
func (h *handlers) lookup(r *stdhttp.Request, q LookupQuery) (any, error) {
	return h.svc.Lookup(r.Context(), q.Abbreviation)
}

// swagger:route POST /suggestions/generate Suggestions suggestionsGenerate
// @Summary Propose glossary entries for abbreviations found in text
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param payload body domain.GenerateRequest true "text"
// @Success 200 {array} domain.Generated ok
// @Router /suggestions/generate [post]
func (h *handlers) generate(r *stdhttp.Request, in domain.GenerateRequest) (any, error) {
	return h.svc.Generate(r.Context(), in)
}
