package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/carloslema/lwtnn/internal/ctxlog"
	"github.com/carloslema/lwtnn/internal/fault"
	"github.com/carloslema/lwtnn/internal/graph"
	"github.com/carloslema/lwtnn/internal/source"
)

// maxRequestBytes bounds the body of POST /compute.
const maxRequestBytes = 1 << 20

// computeRequest is the body of POST /compute. A missing node selects the
// last built node.
type computeRequest struct {
	Inputs [][]float64 `json:"inputs"`
	Node   *int        `json:"node,omitempty"`
}

type computeResponse struct {
	Node    int       `json:"node"`
	Outputs []float64 `json:"outputs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the HTTP surface of the app.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("POST /compute", a.computeHandler)
	return mux
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) computeHandler(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %s", err)})
		return
	}

	node := NodeLast
	if req.Node != nil {
		node = *req.Node
	}
	if node == NodeLast {
		last, ok := a.graph.Last()
		if !ok {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "graph has no nodes"})
			return
		}
		node = int(last)
	}

	out, err := a.graph.ComputeNode(source.NewVectorSource(req.Inputs), graph.NodeID(node))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fault.ErrEvaluation) {
			status = http.StatusUnprocessableEntity
		}
		a.logger.Debug("Compute request failed.", "node", node, "error", err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, computeResponse{Node: node, Outputs: out})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// serve runs the HTTP server on port until ctx is cancelled.
func (a *App) serve(ctx context.Context, port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	return a.serveListener(ctx, ln)
}

func (a *App) serveListener(ctx context.Context, ln net.Listener) error {
	logger := ctxlog.FromContext(ctx)
	a.httpServer = &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Evaluation server starting.", "address", ln.Addr().String())
		errCh <- a.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("evaluation server failed: %w", err)
	case <-ctx.Done():
	}

	return a.closeServer()
}

func (a *App) closeServer() error {
	a.logger.Debug("Closing evaluation server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Evaluation server shutdown failed.", "error", err)
		return err
	}
	a.logger.Info("Evaluation server shut down gracefully.")
	return nil
}
