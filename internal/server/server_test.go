package server

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashagw/sjdb/internal/explain"
	"github.com/yashagw/sjdb/internal/metadata"
	"github.com/yashagw/sjdb/internal/plan"
)

func newTestServer(t *testing.T) *Server {
	cat := metadata.NewCatalogue()
	require.NoError(t, cat.CreateRelation("A", 100))
	require.NoError(t, cat.CreateAttribute("A", "a1", 100))
	require.NoError(t, cat.CreateAttribute("A", "a2", 15))
	require.NoError(t, cat.CreateRelation("B", 150))
	require.NoError(t, cat.CreateAttribute("B", "b1", 150))
	require.NoError(t, cat.CreateAttribute("B", "b2", 100))
	require.NoError(t, cat.CreateAttribute("B", "b3", 5))

	logger := slog.Default()
	return New(explain.New(cat, plan.NewEstimator(), logger), logger)
}

func roundTrip(t *testing.T, w *bufio.Writer, r *bufio.Reader, line string) string {
	t.Helper()
	_, err := w.WriteString(line + "\n")
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	resp, err := r.ReadString('\n')
	require.NoError(t, err)
	return resp
}

func TestHandleConnection(t *testing.T) {
	srv := newTestServer(t)
	client, conn := net.Pipe()
	defer client.Close()

	done := make(chan struct{})
	go func() {
		srv.HandleConnection(conn)
		close(done)
	}()

	r, w := bufio.NewReader(client), bufio.NewWriter(client)

	var resp Response
	line := roundTrip(t, w, r, "SELECT a2, b1 FROM A, B WHERE a2 = b3")
	require.NoError(t, json.Unmarshal([]byte(line), &resp))
	assert.Equal(t, "explain", resp.Type)
	assert.Equal(t, "PROJECT[a2,b1](SELECT[a2=b3](PRODUCT(A,B)))", resp.Canonical)
	assert.Equal(t, "PROJECT[a2,b1](JOIN[a2=b3](PROJECT[a2](A),PROJECT[b1,b3](B)))", resp.Optimized)
	assert.Equal(t, 1000, resp.Rows)
	assert.True(t, strings.HasPrefix(resp.Plan, "PROJECT [a2,b1]  rows=1,000"))
	_, err := uuid.Parse(resp.ID)
	assert.NoError(t, err)

	resp = Response{}
	line = roundTrip(t, w, r, "SELECT z FROM A")
	require.NoError(t, json.Unmarshal([]byte(line), &resp))
	assert.Equal(t, "error", resp.Type)
	assert.Contains(t, resp.Error, "attribute not found")

	assert.Equal(t, "Goodbye!\n", roundTrip(t, w, r, "quit"))
	<-done
}

func TestServe(t *testing.T) {
	srv := newTestServer(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(ctx, listener)
	}()

	conn, err := net.Dial("tcp", listener.Addr().String())
	require.NoError(t, err)
	r, w := bufio.NewReader(conn), bufio.NewWriter(conn)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(roundTrip(t, w, r, "SELECT * FROM A")), &resp))
	assert.Equal(t, "A", resp.Optimized)
	assert.Equal(t, 100, resp.Rows)

	assert.Equal(t, "Goodbye!\n", roundTrip(t, w, r, "EXIT"))
	conn.Close()

	cancel()
	assert.NoError(t, <-served)
}

func TestServeClosesIdleConnections(t *testing.T) {
	srv := newTestServer(t)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(ctx, listener)
	}()

	// The client answers one query, then goes quiet without disconnecting.
	conn, err := net.Dial("tcp", listener.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	r, w := bufio.NewReader(conn), bufio.NewWriter(conn)
	roundTrip(t, w, r, "SELECT a1 FROM A")

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return while a client connection was idle")
	}

	// The server side of the connection is gone.
	_, err = r.ReadString('\n')
	assert.Error(t, err)
}
