package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/go-drift/retained/pkg/core"
	"github.com/go-drift/retained/pkg/graph"
	"github.com/go-drift/retained/pkg/graphics"
)

// DebugServer serves a JSON view of a running UI over HTTP:
//
//	/tree    the widget tree with geometry and interaction flags
//	/frames   the frame trace, filtered by ?limit= and ?min_ms=
//	/runtime  heap and GC samples, filtered by ?limit= and ?window= (seconds)
//	/health   a liveness check
//
// Every request takes the UiMain lock, so the server never observes a
// half-finished frame.
type DebugServer struct {
	main *UiMain

	// Runtime, when set before Start, is sampled while the server runs.
	Runtime *RuntimeSampler

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewDebugServer returns a server inspecting main. It does not listen
// until Start is called.
func NewDebugServer(main *UiMain) *DebugServer {
	return &DebugServer{main: main}
}

// TreeNode is one node of the serialized widget tree.
type TreeNode struct {
	ID       graph.ID   `json:"id"`
	Type     string     `json:"type"`
	Rect     SafeRect   `json:"rect"`
	Hot      bool       `json:"hot,omitempty"`
	Active   bool       `json:"active,omitempty"`
	Focused  bool       `json:"focused,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// SafeFloat wraps a float64 to handle Inf/NaN in JSON encoding.
type SafeFloat float64

func (f SafeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// SafeRect is a JSON-safe version of graphics.Rect.
type SafeRect struct {
	Left   SafeFloat `json:"left"`
	Top    SafeFloat `json:"top"`
	Right  SafeFloat `json:"right"`
	Bottom SafeFloat `json:"bottom"`
}

func safeRect(r graphics.Rect) SafeRect {
	return SafeRect{SafeFloat(r.Left), SafeFloat(r.Top), SafeFloat(r.Right), SafeFloat(r.Bottom)}
}

const maxTreeDepth = 500

// Start listens on addr and serves in the background. It returns the bound
// port, which is useful when addr asks for port zero. Starting a running
// server returns its current port.
func (d *DebugServer) Start(addr string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.listener != nil {
		return d.listener.Addr().(*net.TCPAddr).Port, nil
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("debug server listen: %w", err)
	}

	server := &http.Server{Handler: d.Handler()}
	d.server = server
	d.listener = listener
	if d.Runtime != nil {
		d.Runtime.Start()
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			d.main.logger.Error("debug server stopped", "err", err)
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Stop shuts the server down, waiting at most two seconds for open
// requests.
func (d *DebugServer) Stop() error {
	d.mu.Lock()
	server := d.server
	d.server = nil
	d.listener = nil
	d.mu.Unlock()

	if d.Runtime != nil {
		d.Runtime.Stop()
	}

	if server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// Handler returns the HTTP handler without starting a listener.
func (d *DebugServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tree", d.handleTree)
	mux.HandleFunc("/frames", d.handleFrames)
	mux.HandleFunc("/runtime", d.handleRuntime)
	mux.HandleFunc("/health", handleHealth)
	return mux
}

// Snapshot serializes the tree under the root. ok is false when no root is
// set. It waits for any running host callback to return.
func (d *DebugServer) Snapshot() (tree TreeNode, ok bool) {
	d.main.Inspect(func(s *core.UIState) {
		root := s.Root()
		if !root.IsValid() {
			return
		}
		tree, ok = serializeTree(s, root, 0), true
	})
	return tree, ok
}

func serializeTree(s *core.UIState, node graph.ID, depth int) TreeNode {
	out := TreeNode{
		ID:      node,
		Type:    widgetType(s.Widget(node)),
		Rect:    safeRect(s.AbsoluteRect(node)),
		Hot:     s.Hot() == node,
		Active:  s.Active() == node,
		Focused: s.Focused() == node,
	}
	if depth >= maxTreeDepth {
		return out
	}
	for _, child := range s.Graph().Children(node) {
		out.Children = append(out.Children, serializeTree(s, child, depth+1))
	}
	return out
}

func widgetType(w core.Widget) string {
	if w == nil {
		return "vacant"
	}
	return reflect.TypeOf(w).String()
}

func (d *DebugServer) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			http.Error(w, fmt.Sprintf("panic: %v", rec), http.StatusInternalServerError)
		}
	}()

	tree, ok := d.Snapshot()
	if !ok {
		http.Error(w, "no widget tree", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, tree)
}

func (d *DebugServer) handleFrames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	trace := d.main.opts.Trace
	if trace == nil {
		http.Error(w, "frame tracing disabled", http.StatusServiceUnavailable)
		return
	}

	resp := trace.Snapshot()
	applyFrameFilters(r, &resp)
	writeJSON(w, resp)
}

func (d *DebugServer) handleRuntime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if d.Runtime == nil {
		http.Error(w, "runtime sampling disabled", http.StatusServiceUnavailable)
		return
	}

	samples := applyRuntimeFilters(r, d.Runtime.Snapshot())
	writeJSON(w, struct {
		IntervalMs int64           `json:"intervalMs"`
		Samples    []RuntimeSample `json:"samples"`
	}{
		IntervalMs: d.Runtime.Interval().Milliseconds(),
		Samples:    samples,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func applyFrameFilters(r *http.Request, resp *FrameTimeline) {
	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	if minMs := parseFloatQuery(r, "min_ms"); minMs > 0 {
		cutoff := time.Duration(minMs * float64(time.Millisecond))
		filtered := make([]FrameSample, 0, len(resp.Samples))
		for _, sample := range resp.Samples {
			if sample.Total >= cutoff {
				filtered = append(filtered, sample)
			}
		}
		resp.Samples = filtered
	}

	if limit > 0 && len(resp.Samples) > limit {
		resp.Samples = resp.Samples[len(resp.Samples)-limit:]
	}
}

func applyRuntimeFilters(r *http.Request, samples []RuntimeSample) []RuntimeSample {
	if windowSeconds := parseFloatQuery(r, "window"); windowSeconds > 0 {
		cutoff := time.Now().Add(-time.Duration(windowSeconds * float64(time.Second))).UnixMilli()
		filtered := make([]RuntimeSample, 0, len(samples))
		for _, sample := range samples {
			if sample.Timestamp >= cutoff {
				filtered = append(filtered, sample)
			}
		}
		samples = filtered
	}

	if value := r.URL.Query().Get("limit"); value != "" {
		if limit, err := strconv.Atoi(value); err == nil && limit > 0 && len(samples) > limit {
			samples = samples[len(samples)-limit:]
		}
	}
	return samples
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}
