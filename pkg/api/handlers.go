package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/beeline/pkg/buildinfo"
	"github.com/matzehuels/beeline/pkg/errors"
	"github.com/matzehuels/beeline/pkg/httputil"
	"github.com/matzehuels/beeline/pkg/lineage"
	"github.com/matzehuels/beeline/pkg/observability"
	"github.com/matzehuels/beeline/pkg/pipeline"
)

// AncestorView is one entry of an ancestry response.
type AncestorView struct {
	ID      lineage.ID `json:"id"`
	Depth   int        `json:"depth"`
	ParentA lineage.ID `json:"parent_1,omitempty"`
	ParentB lineage.ID `json:"parent_2,omitempty"`
}

// AncestryResponse is the body of GET /individuals/{id}/ancestors.
type AncestryResponse struct {
	Root      lineage.ID     `json:"root"`
	Depth     int            `json:"depth"`
	Ancestors []AncestorView `json:"ancestors"`
}

// PositionView is one node of a layout response.
type PositionView struct {
	ID    lineage.ID `json:"id"`
	Depth int        `json:"depth"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
}

// LayoutResponse is the body of GET /individuals/{id}/layout.
type LayoutResponse struct {
	Root      lineage.ID     `json:"root"`
	Positions []PositionView `json:"positions"`
}

// GenerationResponse is the body of GET /generations/{g}.
type GenerationResponse struct {
	Generation  int                  `json:"generation"`
	Individuals []lineage.Individual `json:"individuals"`
}

var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"version":     buildinfo.Version,
		"individuals": s.ledger.Len(),
	})
}

func (s *Server) individual(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ind, ok := s.ledger.Get(id)
	if !ok {
		observability.Query().OnLookupMiss(r.Context(), "individual")
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "individual %d not found", id))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ind)
}

func (s *Server) ancestors(w http.ResponseWriter, r *http.Request) {
	a, err := s.ancestry(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	resp := AncestryResponse{Root: a.Root, Depth: a.Depth(), Ancestors: make([]AncestorView, 0, a.Len())}
	for _, id := range a.IDs() {
		e, _ := a.Get(id)
		resp.Ancestors = append(resp.Ancestors, AncestorView{ID: id, Depth: e.Depth, ParentA: e.ParentA, ParentB: e.ParentB})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	a, err := s.ancestry(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	pos := lineage.Layout(lineage.GroupByDepth(a), nil)
	resp := LayoutResponse{Root: a.Root, Positions: make([]PositionView, 0, a.Len())}
	for _, id := range a.IDs() {
		e, _ := a.Get(id)
		p := pos[id]
		resp.Positions = append(resp.Positions, PositionView{ID: id, Depth: e.Depth, X: p.X, Y: p.Y})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) tree(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "tree"))
		return
	}
	a, err := s.ancestry(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	data, _, err := s.runner.Render(r.Context(), s.ledger, a, format, lineage.DOTOptions{Detailed: true})
	if err != nil {
		s.logger.Error("render ancestry", "id", a.Root, "format", format, "error", err)
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) generation(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "g")
	g, err := strconv.Atoi(raw)
	if err != nil || g < 0 {
		httputil.WriteError(w, errors.New(errors.ErrCodeInvalidInput, "invalid generation %q", raw))
		return
	}
	inds := s.ledger.Generation(g)
	if len(inds) == 0 {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "generation %d has no individuals", g))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, GenerationResponse{Generation: g, Individuals: inds})
}
