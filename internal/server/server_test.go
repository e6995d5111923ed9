package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/arcanaland/patience/internal/engine"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) (*Server, *engine.Game) {
	t.Helper()
	g := engine.New(engine.Options{
		Logger:       zap.NewNop(),
		Seed:         11,
		TickInterval: -1,
	})
	t.Cleanup(g.Close)
	return New(g, zap.NewNop()), g
}

func do(t *testing.T, s *Server, method, path, body string) (int, Response) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestGetGame(t *testing.T) {
	s, g := newTestServer(t)

	code, resp := do(t, s, http.MethodGet, "/api/game", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Accepted)
	assert.Equal(t, g.Session(), resp.Session)
	require.NotNil(t, resp.Board)
	assert.Equal(t, "active", resp.Board.Status)
	assert.Len(t, resp.Board.Stock, 24)
	assert.Len(t, resp.Board.Tableaus, 7)
	assert.Len(t, resp.Board.Tableaus[6].Down, 6)
}

func TestDraw(t *testing.T) {
	s, _ := newTestServer(t)

	code, resp := do(t, s, http.MethodPost, "/api/game/draw", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Accepted)
	assert.Equal(t, 1, resp.Board.Moves)
	assert.Len(t, resp.Board.Waste, 3)
}

func TestConcurrentDrawsReportOwnBoard(t *testing.T) {
	s, _ := newTestServer(t)

	const draws = 8
	moves := make([]int, draws)

	var wg sync.WaitGroup
	for i := 0; i < draws; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/game/draw", nil)
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)

			var resp Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err == nil && resp.Board != nil {
				moves[i] = resp.Board.Moves
			}
		}(i)
	}
	wg.Wait()

	sort.Ints(moves)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, moves)
}

func TestRejectedMoveIsConflict(t *testing.T) {
	s, g := newTestServer(t)
	deep := g.Snapshot().Tableaus[5][0].ID

	code, resp := do(t, s, http.MethodPost, "/api/game/move",
		`{"card":"`+deep+`","from":"tableau:5","to":"t0"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, resp.Accepted)
	assert.Contains(t, resp.Reason, "invalid move")
	assert.Zero(t, resp.Board.Moves)
}

func TestLegalMoveAccepted(t *testing.T) {
	s, g := newTestServer(t)

	var move *engine.Move
	for _, m := range g.Hints() {
		if m.Kind == engine.PlaceMove {
			move = &m
			break
		}
	}
	if move == nil {
		_, resp := do(t, s, http.MethodPost, "/api/game/draw", "")
		require.True(t, resp.Accepted)
		return
	}

	body := `{"card":"` + move.Card + `","from":"` + move.From.String() + `","to":"` + move.To.String() + `"}`
	code, resp := do(t, s, http.MethodPost, "/api/game/move", body)
	assert.Equal(t, http.StatusOK, code, resp.Reason)
	assert.Equal(t, 1, resp.Board.Moves)
}

func TestBadRequests(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name, path, body string
	}{
		{"Malformed JSON", "/api/game/move", `{"card":`},
		{"Missing card", "/api/game/move", `{"from":"waste","to":"t1"}`},
		{"Bad zone", "/api/game/move", `{"card":"Java-A","from":"deck","to":"t1"}`},
		{"Zone out of range", "/api/game/move", `{"card":"Java-A","from":"waste","to":"t9"}`},
		{"Promote without card", "/api/game/promote", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := do(t, s, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, resp.Accepted)
			assert.NotEmpty(t, resp.Reason)
		})
	}
}

func TestSurrenderThenNewGame(t *testing.T) {
	s, _ := newTestServer(t)

	code, resp := do(t, s, http.MethodPost, "/api/game/surrender", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "lost", resp.Board.Status)
	first := resp.Session

	code, resp = do(t, s, http.MethodPost, "/api/game/draw", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, resp.Reason, "game is over")

	code, _ = do(t, s, http.MethodPost, "/api/game/promote", `{"card":"Java-A"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, resp = do(t, s, http.MethodPost, "/api/game/new", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "active", resp.Board.Status)
	assert.NotEqual(t, first, resp.Session)
}

func TestClosedGameUnavailable(t *testing.T) {
	s, g := newTestServer(t)
	g.Close()

	code, _ := do(t, s, http.MethodPost, "/api/game/draw", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	http.DefaultClient.CloseIdleConnections()
}
