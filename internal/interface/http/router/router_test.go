package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	engine *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := catalog.NewManager(
		book.NewBook("Of Mice and Men", "John Steinbeck", "Fiction", 1937, book.StatusCheckedOut),
		book.NewBook("Dune", "Frank Herbert", "Science Fiction", 1965, book.StatusAvailable),
		book.NewBook("East of Eden", "John Steinbeck", "Fiction", 1952, book.StatusAvailable),
	)
	jwtManager := jwt.NewManager("test-secret", time.Hour, "library")

	bookHandler := handler.NewBookHandler(
		appcatalog.NewSearchBooksUseCase(manager, logger),
		appcatalog.NewGetBookUseCase(manager),
		appcatalog.NewAddBooksUseCase(manager, logger),
		appcatalog.NewUpdateBookUseCase(manager, logger),
	)
	reportHandler := handler.NewReportHandler(
		appcatalog.NewGetStatisticsUseCase(manager),
		appcatalog.NewReportUseCase(manager, nil, logger),
	)

	engine := New(Options{Mode: gin.TestMode}, logger, bookHandler, reportHandler, middleware.NewAuthMiddleware(jwtManager))

	token, err := jwtManager.GenerateToken("alice")
	require.NoError(t, err)

	return &testServer{engine: engine, token: token.AccessToken}
}

func (s *testServer) do(t *testing.T, method, path, body string, auth bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestPing(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/ping", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestSearchBooks(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodGet, "/api/v1/books?author=john", "", false)
	require.Equal(t, 0, env.Code)

	var result appcatalog.SearchBooksResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, 2, result.Total)
	assert.Equal(t, "Of Mice and Men", result.List[0].Title)
	assert.Equal(t, 2, result.List[1].Index)

	_, env = s.do(t, http.MethodGet, "/api/v1/books?author=john&status=available", "", false)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "East of Eden", result.List[0].Title)

	_, env = s.do(t, http.MethodGet, "/api/v1/books?author=john&case_sensitive=true", "", false)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Zero(t, result.Total)
	assert.NotNil(t, result.List)
}

func TestGetBook(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodGet, "/api/v1/books/1", "", false)
	require.Equal(t, 0, env.Code)
	var item appcatalog.BookItem
	require.NoError(t, json.Unmarshal(env.Data, &item))
	assert.Equal(t, "Dune", item.Title)

	_, env = s.do(t, http.MethodGet, "/api/v1/books/9", "", false)
	assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)

	_, env = s.do(t, http.MethodGet, "/api/v1/books/abc", "", false)
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
}

func TestAddBooks(t *testing.T) {
	s := newTestServer(t)
	body := `{"books":[{"title":"1984","author":"George Orwell","genre":"Dystopian","year":1949,"availability":{"status":"checked_out"}},{"title":"Untracked","year":2001}]}`

	t.Run("未登录", func(t *testing.T) {
		_, env := s.do(t, http.MethodPost, "/api/v1/books", body, false)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, env.Code)
	})

	t.Run("Token格式错误", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(body))
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)

		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, apperrors.ErrCodeInvalidToken, env.Code)
	})

	t.Run("添加成功", func(t *testing.T) {
		_, env := s.do(t, http.MethodPost, "/api/v1/books", body, true)
		require.Equal(t, 0, env.Code, env.Message)

		var result appcatalog.AddBooksResponse
		require.NoError(t, json.Unmarshal(env.Data, &result))
		require.Len(t, result.Added, 2)
		assert.Equal(t, 3, result.Added[0].Index)
		assert.Nil(t, result.Added[1].Availability)
		assert.Equal(t, catalog.Statistics{Total: 5, Available: 2, CheckedOut: 2}, result.Statistics)
	})

	t.Run("缺少books", func(t *testing.T) {
		_, env := s.do(t, http.MethodPost, "/api/v1/books", `{}`, true)
		assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
	})
}

func TestUpdateBook(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPatch, "/api/v1/books/0",
		`{"updates":{"availability":{"status":"available"},"year":1938,"shelf":"B2"}}`, true)
	require.Equal(t, 0, env.Code, env.Message)

	var result appcatalog.UpdateBookResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1938, result.Book.Year)
	assert.Equal(t, "B2", result.Book.Attributes["shelf"])
	assert.Equal(t, catalog.Statistics{Total: 3, Available: 3, CheckedOut: 0}, result.Statistics)

	_, env = s.do(t, http.MethodGet, "/api/v1/statistics", "", false)
	var stats catalog.Statistics
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 3, stats.Available)

	t.Run("类型不匹配", func(t *testing.T) {
		_, env := s.do(t, http.MethodPatch, "/api/v1/books/1", `{"updates":{"year":"soon"}}`, true)
		assert.Equal(t, apperrors.ErrCodeInvalidArgument, env.Code)
	})

	t.Run("位置不存在", func(t *testing.T) {
		_, env := s.do(t, http.MethodPatch, "/api/v1/books/42", `{"updates":{"title":"x"}}`, true)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)
	})

	t.Run("未登录", func(t *testing.T) {
		_, env := s.do(t, http.MethodPatch, "/api/v1/books/0", `{"updates":{"title":"x"}}`, false)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, env.Code)
	})
}

func TestReports(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodGet, "/api/v1/reports/summaries", "", false)
	var lines []string
	require.NoError(t, json.Unmarshal(env.Data, &lines))
	require.Len(t, lines, 3)
	assert.Equal(t, `"Dune" by Frank Herbert (1965) [Science Fiction] - Available`, lines[1])

	_, env = s.do(t, http.MethodGet, "/api/v1/reports/titles", "", false)
	var titles []string
	require.NoError(t, json.Unmarshal(env.Data, &titles))
	assert.Equal(t, []string{"Of Mice and Men", "Dune", "East of Eden"}, titles)

	_, env = s.do(t, http.MethodGet, "/api/v1/reports/analysis", "", false)
	var analysis catalog.Analysis
	require.NoError(t, json.Unmarshal(env.Data, &analysis))
	assert.Equal(t, map[string]int{"Fiction": 2, "Science Fiction": 1}, analysis.Genres)
	require.NotNil(t, analysis.MostCommonDecade)
	assert.Equal(t, 1930, analysis.MostCommonDecade.Decade)

	_, env = s.do(t, http.MethodGet, "/api/v1/reports/genres", "", false)
	var genres map[string][]appcatalog.BookItem
	require.NoError(t, json.Unmarshal(env.Data, &genres))
	assert.Len(t, genres["Fiction"], 2)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/v1/books", "", false)

	w, _ := s.do(t, http.MethodGet, "/metrics", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "catalog_searches_total")
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/v1/books",status="200"}`)
}
