package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dealhunt/engagement-service/internal/models"
)

// capHandler — тестовый slog.Handler, который:
//   - аккумулирует базовые attrs, приходящие через Logger.With(...);
//   - собирает attrs из каждой записи в map[string]any;
//   - не создаёт реальных I/O, чтобы не паниковать в тестах.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)

	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) > 0 {
		h.base = append(h.base, attrs...)
	}

	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func makeReq(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = (&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}).String()
	return req
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errEnvelope struct {
	Error apiError `json:"error"`
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	m1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m1-end")
		})
	}

	m2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m2-end")
		})
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	chain := Chain(final, m1, m2)
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/chain"))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	var seenID string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = r.Header.Get("X-Request-Id")
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, RequestID())
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/rid"))

	respID := rr.Header().Get("X-Request-Id")
	require.NotEmpty(t, respID)
	require.Len(t, respID, 32) // 16 байт -> 32 hex-символа
	require.Equal(t, respID, seenID)
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, RequestID())
	rr := httptest.NewRecorder()
	req := makeReq("/rid")
	req.Header.Set("X-Request-Id", "client-supplied")
	chain.ServeHTTP(rr, req)

	require.Equal(t, "client-supplied", rr.Header().Get("X-Request-Id"))
}

func TestActor_ParsesHeaders(t *testing.T) {
	id := uuid.New()

	var got models.Actor
	var ok bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = ActorFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, Actor())
	rr := httptest.NewRecorder()
	req := makeReq("/actor")
	req.Header.Set("X-Actor-Id", id.String())
	req.Header.Set("X-Actor-Name", "  alice  ")
	chain.ServeHTTP(rr, req)

	require.True(t, ok)
	require.Equal(t, id, got.ID)
	require.Equal(t, "alice", got.Username)
}

func TestActor_MissingOrBadHeader_IsAnonymous(t *testing.T) {
	var ok bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = ActorFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, Actor())

	// нет заголовков
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/actor"))
	require.False(t, ok)
	require.Equal(t, http.StatusOK, rr.Code)

	// кривой uuid
	rr = httptest.NewRecorder()
	req := makeReq("/actor")
	req.Header.Set("X-Actor-Id", "not-a-uuid")
	chain.ServeHTTP(rr, req)
	require.False(t, ok)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestActorFrom_EmptyContext(t *testing.T) {
	_, ok := ActorFrom(context.Background())
	require.False(t, ok)
}

func TestRecover_PanicTo500Envelope(t *testing.T) {
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	chain := Chain(h, Recover())
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/panic"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "internal", env.Error.Code)
	// детали паники не утекли
	require.NotContains(t, rr.Body.String(), "boom")
}

func TestTimeout_SetsDeadlineWhenAbsent(t *testing.T) {
	var hasDeadline bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, Timeout(2*time.Second))
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/deadline"))

	require.True(t, hasDeadline)
}

func TestTimeout_RespectsExistingDeadline(t *testing.T) {
	var deadline time.Time

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, _ = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, Timeout(time.Hour))
	rr := httptest.NewRecorder()

	want := time.Now().Add(time.Second)
	ctx, cancel := context.WithDeadline(context.Background(), want)
	defer cancel()

	chain.ServeHTTP(rr, makeReq("/deadline").WithContext(ctx))

	require.WithinDuration(t, want, deadline, 10*time.Millisecond)
}

func TestTimeout_ZeroIsNoop(t *testing.T) {
	var hasDeadline bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	})

	chain := Chain(h, Timeout(0))
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/deadline"))

	require.False(t, hasDeadline)
}

func TestLogging_EmitsRecordWithRequestID(t *testing.T) {
	cap := &capHandler{}
	logger := slog.New(cap)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	chain := Chain(h, RequestID(), Logging(logger))
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/discussions"))

	require.Equal(t, 1, cap.count)
	require.Equal(t, "http", cap.lastMsg)
	require.Equal(t, slog.LevelInfo, cap.lastLvl)
	require.Equal(t, "GET", cap.attrs["method"])
	require.Equal(t, "/discussions", cap.attrs["path"])
	require.EqualValues(t, http.StatusCreated, cap.attrs["status"])
	require.NotEmpty(t, cap.attrs["request_id"])
}
