package server

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arloliu/galacticbuf/compress"
	"github.com/arloliu/galacticbuf/encoding"
	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/format"
	"github.com/arloliu/galacticbuf/internal/auth"
	"github.com/arloliu/galacticbuf/internal/config"
	"github.com/arloliu/galacticbuf/internal/orders"
	"github.com/arloliu/galacticbuf/value"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.TokenSecret = "test-secret"

	s, err := New(cfg, zerolog.Nop(), append([]Option{WithBcryptCost(bcrypt.MinCost)}, opts...)...)
	require.NoError(t, err)

	return s
}

func encode(t *testing.T, msg value.Object) []byte {
	t.Helper()
	data, err := encoding.SerializeMessage(msg)
	require.NoError(t, err)

	return data
}

func do(t *testing.T, s *Server, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", ContentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) value.Object {
	t.Helper()
	require.Equal(t, ContentType, rec.Header().Get("Content-Type"))

	_, codec, err := compress.ForContentEncoding(rec.Header().Get("Content-Encoding"))
	require.NoError(t, err)
	data, err := codec.Decompress(rec.Body.Bytes())
	require.NoError(t, err)

	msg, err := encoding.ParseMessage(data)
	require.NoError(t, err)

	return msg
}

func credentials(user, pass string) value.Object {
	return value.NewObject(
		value.F("username", value.NewStr(user)),
		value.F("password", value.NewStr(pass)),
	)
}

func login(t *testing.T, s *Server, user, pass string) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/register", encode(t, credentials(user, pass)), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodPost, "/login", encode(t, credentials(user, pass)), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	token, ok := decodeBody(t, rec).GetString("token")
	require.True(t, ok)

	return token
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDepth = 0

	_, err := New(cfg, zerolog.Nop())
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.Bytes())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodGet, "/health", nil, nil)

	rec := do(t, s, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "galacticbuf_http_requests_total")
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body []byte
		want int
	}{
		{name: "created", body: encode(t, credentials("alice", "pw")), want: http.StatusNoContent},
		{name: "duplicate", body: encode(t, credentials("alice", "other")), want: http.StatusConflict},
		{name: "empty username", body: encode(t, credentials("", "pw")), want: http.StatusBadRequest},
		{name: "empty password", body: encode(t, credentials("bob", "")), want: http.StatusBadRequest},
		{
			name: "missing password",
			body: encode(t, value.NewObject(value.F("username", value.NewStr("bob")))),
			want: http.StatusBadRequest,
		},
		{
			name: "wrong type",
			body: encode(t, value.NewObject(
				value.F("username", value.NewInt(1)),
				value.F("password", value.NewStr("pw")),
			)),
			want: http.StatusBadRequest,
		},
		{name: "garbage", body: []byte{0x09, 0x09}, want: http.StatusBadRequest},
		{name: "empty body", body: []byte{}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/register", tt.body, nil)
			require.Equal(t, tt.want, rec.Code)
			require.Empty(t, rec.Body.Bytes(), "errors never leak to the client")
		})
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "alice", "pw")

	user, err := s.issuer.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "alice", user)

	rec := do(t, s, http.MethodPost, "/login", encode(t, credentials("alice", "wrong")), nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/login", encode(t, credentials("nobody", "pw")), nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/login", []byte{0x01, 0x00, 0x00, 0x05, 0x00}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code, "trailing bytes")
}

func TestOrders_Flow(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "trader", "pw")
	bearer := map[string]string{"Authorization": "Bearer " + token}

	for _, o := range []orders.Order{
		{ID: "o-2", Price: 250, Quantity: 10, DeliveryStart: 1000, DeliveryEnd: 2000},
		{ID: "o-1", Price: 100, Quantity: 5, DeliveryStart: 1000, DeliveryEnd: 2000},
		{ID: "o-3", Price: 50, Quantity: 1, DeliveryStart: 1000, DeliveryEnd: 3000},
	} {
		rec := do(t, s, http.MethodPost, "/orders", encode(t, orders.ToObject(o)), bearer)
		require.Equal(t, http.StatusCreated, rec.Code)

		back, err := orders.FromObject(decodeBody(t, rec))
		require.NoError(t, err)
		require.Equal(t, o, back)
	}

	rec := do(t, s, http.MethodPost, "/orders",
		encode(t, orders.ToObject(orders.Order{ID: "o-1", Price: 1, DeliveryStart: 1, DeliveryEnd: 2})), bearer)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/orders?delivery_start=1000&delivery_end=2000", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	list, err := orders.FromListMessage(decodeBody(t, rec))
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "o-1", list[0].ID, "cheapest first")
	require.Equal(t, "o-2", list[1].ID)

	rec = do(t, s, http.MethodGet, "/orders?delivery_start=1000&delivery_end=2000", nil,
		map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusNotModified, rec.Code)
	require.Empty(t, rec.Body.Bytes())

	rec = do(t, s, http.MethodDelete, "/orders/o-1", nil, bearer)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodDelete, "/orders/o-1", nil, bearer)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, "/orders?delivery_start=1000&delivery_end=2000", nil,
		map[string]string{"If-None-Match": etag})
	require.Equal(t, http.StatusOK, rec.Code, "book changed, etag is stale")
	require.NotEqual(t, etag, rec.Header().Get("ETag"))
}

func TestOrders_EmptyWindow(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/orders?delivery_start=1&delivery_end=2", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	msg := decodeBody(t, rec)
	list, ok := msg.GetList("orders")
	require.True(t, ok)
	require.Equal(t, format.TagObject, list.ElemType)
	require.Zero(t, list.Len())
}

func TestOrders_BadQuery(t *testing.T) {
	s := newTestServer(t)

	for _, q := range []string{
		"",
		"?delivery_start=1",
		"?delivery_end=2",
		"?delivery_start=a&delivery_end=2",
		"?delivery_start=1&delivery_end=99999999999999999999",
	} {
		t.Run(q, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/orders"+q, nil, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestOrders_RequireBearer(t *testing.T) {
	s := newTestServer(t)
	body := encode(t, orders.ToObject(orders.Order{ID: "o", Price: 1, Quantity: 1, DeliveryStart: 1, DeliveryEnd: 2}))

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Basic abc",
		"empty token":  "Bearer ",
		"forged":       "Bearer YWxpY2U.1.AAAA",
	} {
		t.Run(name, func(t *testing.T) {
			headers := map[string]string{}
			if header != "" {
				headers["Authorization"] = header
			}
			require.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodPost, "/orders", body, headers).Code)
			require.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodDelete, "/orders/o", nil, headers).Code)
		})
	}
}

func TestOrders_CustomValidator(t *testing.T) {
	book := orders.NewBook()
	s := newTestServer(t,
		WithBook(book),
		WithValidator(auth.FuncValidator(func(token string) (string, error) {
			if token != "static" {
				return "", errs.ErrInvalidToken
			}

			return "svc", nil
		})),
	)

	body := encode(t, orders.ToObject(orders.Order{ID: "o", Price: 1, Quantity: 1, DeliveryStart: 1, DeliveryEnd: 2}))
	rec := do(t, s, http.MethodPost, "/orders", body, map[string]string{"Authorization": "bearer static"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, book.Len())
}

func TestOrders_InvalidOrderBody(t *testing.T) {
	s := newTestServer(t, WithValidator(auth.FuncValidator(func(string) (string, error) { return "u", nil })))
	bearer := map[string]string{"Authorization": "Bearer x"}

	rec := do(t, s, http.MethodPost, "/orders", encode(t, value.NewObject(value.F("order_id", value.NewStr("o")))), bearer)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	deep := value.Value(value.NewInt(1))
	for range 40 {
		deep = value.NewList(format.TagObject, value.NewObject(value.F("x", deep)))
	}
	data, err := encoding.SerializeMessage(value.NewObject(value.F("d", deep)), encoding.WithEncoderMaxDepth(100))
	require.NoError(t, err)

	rec = do(t, s, http.MethodPost, "/orders", data, bearer)
	require.Equal(t, http.StatusBadRequest, rec.Code, "nesting beyond max_depth")
}

func TestContentEncoding(t *testing.T) {
	s := newTestServer(t)
	raw := encode(t, credentials("zed", "pw"))

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(ct)
			require.NoError(t, err)
			body, err := codec.Compress(raw)
			require.NoError(t, err)

			rec := do(t, s, http.MethodPost, "/login", body, map[string]string{
				"Content-Encoding": ct.ContentEncoding(),
				"Accept-Encoding":  ct.ContentEncoding(),
			})
			// zed is not registered yet, the body still had to decode
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	rec := do(t, s, http.MethodPost, "/register", raw, map[string]string{"Content-Encoding": "gzip"})
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = do(t, s, http.MethodPost, "/register", raw, map[string]string{"Content-Encoding": "zstd"})
	require.Equal(t, http.StatusBadRequest, rec.Code, "identity body labelled zstd")
}

func TestResponseEncoding(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "alice", "pw")
	require.NotEmpty(t, token)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/login", encode(t, credentials("alice", "pw")),
				map[string]string{"Accept-Encoding": "gzip, " + ct.ContentEncoding()})
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, ct.ContentEncoding(), rec.Header().Get("Content-Encoding"))

			_, ok := decodeBody(t, rec).GetString("token")
			require.True(t, ok)
		})
	}

	cfg := config.Default()
	cfg.ResponseEncoding = format.CompressionS2
	configured, err := New(cfg, zerolog.Nop(), WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	rec := do(t, configured, http.MethodGet, "/orders?delivery_start=1&delivery_end=2", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "s2", rec.Header().Get("Content-Encoding"))
	decodeBody(t, rec)

	rec = do(t, configured, http.MethodGet, "/orders?delivery_start=1&delivery_end=2", nil,
		map[string]string{"Accept-Encoding": "gzip, br"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Content-Encoding"), "configured coding not offered by the client")
	decodeBody(t, rec)
}

func TestOrders_ETagPerContentCoding(t *testing.T) {
	s := newTestServer(t)
	const path = "/orders?delivery_start=1&delivery_end=2"

	identity := do(t, s, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, identity.Code)
	zstd := do(t, s, http.MethodGet, path, nil, map[string]string{"Accept-Encoding": "zstd"})
	require.Equal(t, http.StatusOK, zstd.Code)
	require.Equal(t, "zstd", zstd.Header().Get("Content-Encoding"))

	identityTag := identity.Header().Get("ETag")
	zstdTag := zstd.Header().Get("ETag")
	require.NotEqual(t, identityTag, zstdTag)

	rec := do(t, s, http.MethodGet, path, nil, map[string]string{
		"Accept-Encoding": "zstd",
		"If-None-Match":   identityTag,
	})
	require.Equal(t, http.StatusOK, rec.Code, "identity tag does not validate a zstd representation")

	rec = do(t, s, http.MethodGet, path, nil, map[string]string{
		"Accept-Encoding": "zstd",
		"If-None-Match":   zstdTag,
	})
	require.Equal(t, http.StatusNotModified, rec.Code)
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx
		if err != nil {
			return false
		}
		_ = resp.Body.Close()

		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
