package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/beeline/pkg/lineage"
	"github.com/matzehuels/beeline/pkg/observability"
	"github.com/matzehuels/beeline/pkg/observability/prom"
	"github.com/matzehuels/beeline/pkg/tour"
)

// testLedger builds 1, 2 (founders) -> 3 (gen 1) and 1, 3 -> 4 (gen 2).
func testLedger() *lineage.Ledger {
	l := lineage.NewLedger()
	a := l.Register(lineage.Entry{SimulationID: "s", Tour: tour.Tour{0, 1, 2, 0}, Length: 4})
	b := l.Register(lineage.Entry{SimulationID: "s", Tour: tour.Tour{0, 2, 1, 0}, Length: 4})
	c := l.Register(lineage.Entry{SimulationID: "s", Generation: 1, Tour: tour.Tour{0, 1, 2, 0}, Length: 4, ParentA: a, ParentB: b})
	l.Register(lineage.Entry{SimulationID: "s", Generation: 2, Tour: tour.Tour{0, 2, 1, 0}, Length: 4, ParentA: a, ParentB: c})
	return l
}

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	srv := httptest.NewServer(New(testLedger(), opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestStatusCodes(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		path string
		want int
	}{
		{"/healthz", http.StatusOK},
		{"/individuals/3", http.StatusOK},
		{"/individuals/99", http.StatusNotFound},
		{"/individuals/abc", http.StatusBadRequest},
		{"/individuals/0", http.StatusBadRequest},
		{"/individuals/4/ancestors", http.StatusOK},
		{"/individuals/4/ancestors?max_depth=1", http.StatusOK},
		{"/individuals/4/ancestors?max_depth=-2", http.StatusBadRequest},
		{"/individuals/99/ancestors", http.StatusNotFound},
		{"/individuals/4/layout", http.StatusOK},
		{"/individuals/4/tree?format=dot", http.StatusOK},
		{"/individuals/4/tree?format=pdf", http.StatusBadRequest},
		{"/generations/0", http.StatusOK},
		{"/generations/7", http.StatusNotFound},
		{"/generations/x", http.StatusBadRequest},
		{"/metrics", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			assert.Equal(t, tt.want, resp.StatusCode, string(body))
		})
	}
}

func TestIndividual(t *testing.T) {
	_, body := get(t, newTestServer(t), "/individuals/3")
	var ind lineage.Individual
	require.NoError(t, json.Unmarshal(body, &ind))
	assert.Equal(t, lineage.ID(3), ind.ID)
	assert.Equal(t, lineage.ID(1), ind.ParentA)
	assert.Equal(t, lineage.ID(2), ind.ParentB)
	assert.Equal(t, tour.Tour{0, 1, 2, 0}, ind.Tour)
}

func TestAncestors(t *testing.T) {
	srv := newTestServer(t)

	_, body := get(t, srv, "/individuals/4/ancestors")
	var resp AncestryResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, lineage.ID(4), resp.Root)
	assert.Equal(t, 2, resp.Depth)

	depths := map[lineage.ID]int{}
	for _, a := range resp.Ancestors {
		depths[a.ID] = a.Depth
	}
	// 1 is both a parent and a grandparent of 4; its minimal depth wins.
	assert.Equal(t, map[lineage.ID]int{4: 0, 1: 1, 3: 1, 2: 2}, depths)

	_, body = get(t, srv, "/individuals/4/ancestors?max_depth=1")
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Len(t, resp.Ancestors, 3)
}

func TestLayout(t *testing.T) {
	_, body := get(t, newTestServer(t), "/individuals/3/layout")
	var resp LayoutResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Positions, 3)
	assert.Equal(t, PositionView{ID: 3, Depth: 0, X: 0, Y: 0}, resp.Positions[0])
	assert.InDelta(t, 0, resp.Positions[1].X+resp.Positions[2].X, 1e-9, "level is centered")
}

func TestTreeDOT(t *testing.T) {
	resp, body := get(t, newTestServer(t), "/individuals/3/tree?format=dot")
	assert.Equal(t, "text/vnd.graphviz", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(string(body), "digraph"))
}

func TestGeneration(t *testing.T) {
	_, body := get(t, newTestServer(t), "/generations/0")
	var resp GenerationResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, 0, resp.Generation)
	assert.Len(t, resp.Individuals, 2)
}

func TestMetrics(t *testing.T) {
	defer observability.Reset()
	reg := prometheus.NewRegistry()
	prom.New(reg).Install()

	srv := newTestServer(t, WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	get(t, srv, "/individuals/4/ancestors")
	get(t, srv, "/individuals/99")

	resp, body := get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "beeline_ancestry_size_count 1")
	assert.Contains(t, string(body), `beeline_lookup_misses_total{kind="individual"} 1`)
}
