package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/yashagw/sjdb/internal/explain"
	"github.com/yashagw/sjdb/internal/plan"
)

// Response is written as one JSON line per request.
type Response struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Canonical string `json:"canonical,omitempty"`
	Optimized string `json:"optimized,omitempty"`
	Rows      int    `json:"rows,omitempty"`
	Plan      string `json:"plan,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Server answers query text sent over TCP, one query per line, with the
// canonical and optimised plans of the query. Queries are never executed.
type Server struct {
	explainer *explain.Explainer
	logger    *slog.Logger
	wg        sync.WaitGroup

	mu      sync.Mutex
	conns   map[net.Conn]struct{}
	closing bool
}

func New(explainer *explain.Explainer, logger *slog.Logger) *Server {
	return &Server{
		explainer: explainer,
		logger:    logger,
	}
}

// Serve accepts connections until ctx is done, then closes the listener and
// every open connection and waits for their handlers to return.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		listener.Close()
		s.closeConns()
	}()

	s.logger.Info("sjdb server listening", "addr", listener.Addr().String())
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return err
			}
			s.logger.Warn("error accepting connection", "error", err)
			continue
		}

		if !s.track(conn) {
			conn.Close()
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.HandleConnection(conn)
		}()
	}
}

// track registers an open connection. It reports false once the server is
// shutting down.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	if s.conns == nil {
		s.conns = make(map[net.Conn]struct{})
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

// closeConns closes every open connection, unblocking handlers waiting for
// client input.
func (s *Server) closeConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closing = true
	for conn := range s.conns {
		conn.Close()
	}
}

func (s *Server) HandleConnection(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	writer := bufio.NewWriter(conn)

	for {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && err != io.EOF && !errors.Is(err, net.ErrClosed) {
				s.logger.Warn("error reading from client", "error", err)
			}
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		if upper := strings.ToUpper(query); upper == "QUIT" || upper == "EXIT" {
			writer.WriteString("Goodbye!\n")
			writer.Flush()
			break
		}

		response := s.explainQuery(query)

		jsonData, err := json.Marshal(response)
		if err != nil {
			errorResp := Response{
				ID:    response.ID,
				Type:  "error",
				Error: "failed to serialize response: " + err.Error(),
			}
			jsonData, _ = json.Marshal(errorResp)
		}

		writer.Write(jsonData)
		writer.WriteString("\n")
		if err := writer.Flush(); err != nil {
			s.logger.Warn("error writing to client", "error", err)
			break
		}
	}
}

func (s *Server) explainQuery(sql string) Response {
	id := uuid.NewString()
	logger := s.logger.With("request_id", id)

	res, err := s.explainer.Explain(sql)
	if err != nil {
		logger.Info("query rejected", "query", sql, "error", err)
		return Response{
			ID:    id,
			Type:  "error",
			Error: err.Error(),
		}
	}

	logger.Info("query explained", "query", sql, "rows", res.Optimized.Output().TupleCount())
	return Response{
		ID:        id,
		Type:      "explain",
		Canonical: res.Canonical.String(),
		Optimized: res.Optimized.String(),
		Rows:      res.Optimized.Output().TupleCount(),
		Plan:      plan.Explain(res.Optimized),
	}
}
