package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sagarc03/apitour"
	apihttp "github.com/sagarc03/apitour/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// readSeekNopCloser wraps an io.ReadSeeker to add a no-op Close method
type readSeekNopCloser struct {
	io.ReadSeeker
}

func (r readSeekNopCloser) Close() error { return nil }

// MockStaticStore is a mock implementation of apitour.StaticStore
type MockStaticStore struct {
	mock.Mock
}

func (m *MockStaticStore) Get(ctx context.Context, path string) (apitour.StaticFile, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(apitour.StaticFile), args.Error(1)
}

func newTestHandler(t *testing.T, static apitour.StaticStore) http.Handler {
	t.Helper()

	pagination, err := apitour.NewPaginationResolver(50)
	require.NoError(t, err)

	config := &apihttp.HandlerConfig{
		Pagination:  pagination,
		Token:       apitour.NewTokenChecker("SECRET_VALUE"),
		RedirectURL: "https://fastapi.tiangolo.com",
		CatFile:     "cat.jpg",
	}
	return apihttp.NewHandler(config, static).Router()
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHandler_Index(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(t, h, httptest.NewRequest("GET", "/index", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"msg": "Olá FastAPI"}, decodeJSON[map[string]string](t, rec))
}

func TestHandler_ListUsers(t *testing.T) {
	h := newTestHandler(t, nil)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		want       apitour.PageSize
		wantField  string
		wantRule   string
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK, want: apitour.PageSize{Page: 1, Size: 10}},
		{name: "explicit", query: "?page=3&size=25", wantStatus: http.StatusOK, want: apitour.PageSize{Page: 3, Size: 25}},
		{name: "size at bound", query: "?size=100", wantStatus: http.StatusOK, want: apitour.PageSize{Page: 1, Size: 100}},
		{name: "page zero", query: "?page=0", wantStatus: http.StatusUnprocessableEntity, wantField: "query.page", wantRule: "gt"},
		{name: "size too large", query: "?size=101", wantStatus: http.StatusUnprocessableEntity, wantField: "query.size", wantRule: "le"},
		{name: "page not a number", query: "?page=abc", wantStatus: http.StatusUnprocessableEntity, wantField: "query.page", wantRule: "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h, httptest.NewRequest("GET", "/users"+tt.query, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.want, decodeJSON[apitour.PageSize](t, rec))
				return
			}

			resp := decodeJSON[apihttp.ErrorResponse](t, rec)
			assert.Equal(t, "validation_error", resp.Error)
			require.Len(t, resp.Details, 1)
			assert.Equal(t, tt.wantField, resp.Details[0].Field)
			assert.Equal(t, tt.wantRule, resp.Details[0].Rule)
		})
	}
}

func TestHandler_ListUsers_ReportsEveryFailure(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(t, h, httptest.NewRequest("GET", "/users?page=0&size=500", nil))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeJSON[apihttp.ErrorResponse](t, rec)
	require.Len(t, resp.Details, 2)
	assert.Equal(t, "query.page", resp.Details[0].Field)
	assert.Equal(t, "query.size", resp.Details[1].Field)
	assert.Equal(t, "500", resp.Details[1].Value)
}

func TestHandler_GetUser(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(t, h, httptest.NewRequest("GET", "/users/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"id": 1}, decodeJSON[map[string]int](t, rec))

	for _, id := range []string{"0", "-1", "abc"} {
		rec := serve(t, h, httptest.NewRequest("GET", "/users/"+id, nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "id %s", id)
	}
}

func TestHandler_LicencePlate(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(t, h, httptest.NewRequest("GET", "/licence-plates/AB-123-CD", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"licence": "AB-123-CD"}, decodeJSON[map[string]string](t, rec))

	rec = serve(t, h, httptest.NewRequest("GET", "/licence-plates/abc", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeJSON[apihttp.ErrorResponse](t, rec)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "path.licence", resp.Details[0].Field)
	assert.Equal(t, "pattern", resp.Details[0].Rule)
	assert.Equal(t, "abc", resp.Details[0].Value)
}

func TestHandler_CreateUser(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest("POST", "/users", strings.NewReader(`{"name":"Ana","age":30}`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, apitour.User{Name: "Ana", Age: 30}, decodeJSON[apitour.User](t, rec))
}

func TestHandler_CreateUser_Invalid(t *testing.T) {
	h := newTestHandler(t, nil)

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{name: "empty body", body: "", wantFields: []string{"body"}},
		{name: "missing age", body: `{"name":"Ana"}`, wantFields: []string{"body.age"}},
		{name: "wrong types", body: `{"name":"Ana","age":"thirty"}`, wantFields: []string{"body.age"}},
		{name: "not json", body: `{name`, wantFields: []string{"body"}},
		{name: "both missing", body: `{}`, wantFields: []string{"body.name", "body.age"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/users", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := serve(t, h, req)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			resp := decodeJSON[apihttp.ErrorResponse](t, rec)
			var fields []string
			for _, d := range resp.Details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestHandler_CreateUserForm(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest("POST", "/users/form", strings.NewReader("name=Ana&age=30"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, apitour.User{Name: "Ana", Age: 30}, decodeJSON[apitour.User](t, rec))

	req = httptest.NewRequest("POST", "/users/form", strings.NewReader("name=Ana"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = serve(t, h, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeJSON[apihttp.ErrorResponse](t, rec)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "form.age", resp.Details[0].Field)
	assert.Equal(t, "required", resp.Details[0].Rule)
}

type upload struct {
	field, filename, contentType, content string
}

func multipartRequest(t *testing.T, target string, uploads ...upload) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, u := range uploads {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+u.field+`"; filename="`+u.filename+`"`)
		header.Set("Content-Type", u.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = io.WriteString(part, u.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_UploadFile(t *testing.T) {
	h := newTestHandler(t, nil)

	req := multipartRequest(t, "/file", upload{"file", "notes.txt", "text/plain", "hello"})
	rec := serve(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		apitour.FileInfo{FileName: "notes.txt", ContentType: "text/plain"},
		decodeJSON[apitour.FileInfo](t, rec),
	)
}

func TestHandler_UploadFile_Missing(t *testing.T) {
	h := newTestHandler(t, nil)

	req := multipartRequest(t, "/file", upload{"other", "notes.txt", "text/plain", "hello"})
	rec := serve(t, h, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeJSON[apihttp.ErrorResponse](t, rec)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "file.file", resp.Details[0].Field)
}

func TestHandler_UploadFiles(t *testing.T) {
	h := newTestHandler(t, nil)

	req := multipartRequest(t, "/files",
		upload{"files", "a.txt", "text/plain", "a"},
		upload{"files", "b.png", "image/png", "b"},
	)
	rec := serve(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []apitour.FileInfo{
		{FileName: "a.txt", ContentType: "text/plain"},
		{FileName: "b.png", ContentType: "image/png"},
	}, decodeJSON[[]apitour.FileInfo](t, rec))
}

func TestHandler_Hello(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Hello", "world")
	rec := serve(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"hello": "world"}, decodeJSON[map[string]string](t, rec))

	rec = serve(t, h, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeJSON[apihttp.ErrorResponse](t, rec)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "header.hello", resp.Details[0].Field)
}

func TestHandler_PasswordMatch(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest("POST", "/password-match",
		strings.NewReader(`{"password":"s3cret","password_confirm":"s3cret"}`))
	rec := serve(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"message": "Passwords match."}, decodeJSON[map[string]string](t, rec))

	req = httptest.NewRequest("POST", "/password-match",
		strings.NewReader(`{"password":"s3cret","password_confirm":"other"}`))
	rec = serve(t, h, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeJSON[apihttp.ErrorResponse](t, rec)
	assert.Equal(t, "mismatch", resp.Error)
	assert.Contains(t, resp.Message, "passwords don't match")
}

func TestHandler_FixedDocuments(t *testing.T) {
	h := newTestHandler(t, nil)

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{path: "/html", contentType: "text/html; charset=utf-8", contains: "Look ma! HTML!"},
		{path: "/text", contentType: "text/plain; charset=utf-8", contains: "Hello world"},
		{path: "/xml", contentType: "application/xml", contains: "<shampoo>"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(t, h, httptest.NewRequest("GET", tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}
}

func TestHandler_Redirect(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(t, h, httptest.NewRequest("GET", "/redirect", nil))

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://fastapi.tiangolo.com", rec.Header().Get("Location"))
}

func TestHandler_Cat(t *testing.T) {
	store := new(MockStaticStore)
	h := newTestHandler(t, store)

	content := "fake jpeg bytes"
	store.On("Get", mock.Anything, "cat.jpg").Return(apitour.StaticFile{
		Content:     readSeekNopCloser{strings.NewReader(content)},
		ContentType: "image/jpeg",
		ETag:        `"abc123"`,
		Size:        int64(len(content)),
		ModTime:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	rec := serve(t, h, httptest.NewRequest("GET", "/cat", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, `"abc123"`, rec.Header().Get("ETag"))
	assert.Equal(t, content, rec.Body.String())
	store.AssertExpectations(t)
}

func TestHandler_Cat_IfNoneMatch(t *testing.T) {
	store := new(MockStaticStore)
	h := newTestHandler(t, store)

	store.On("Get", mock.Anything, "cat.jpg").Return(apitour.StaticFile{
		Content:     readSeekNopCloser{strings.NewReader("x")},
		ContentType: "image/jpeg",
		ETag:        `"abc123"`,
		Size:        1,
	}, nil)

	req := httptest.NewRequest("GET", "/cat", nil)
	req.Header.Set("If-None-Match", `"abc123"`)
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestHandler_Cat_NotFound(t *testing.T) {
	store := new(MockStaticStore)
	h := newTestHandler(t, store)

	store.On("Get", mock.Anything, "cat.jpg").Return(apitour.StaticFile{}, apitour.ErrNotFound)

	rec := serve(t, h, httptest.NewRequest("GET", "/cat", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestHandler_Cat_NoStore(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(t, h, httptest.NewRequest("GET", "/cat", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Pagination(t *testing.T) {
	h := newTestHandler(t, nil)

	tests := []struct {
		name string
		url  string
		want map[string]int
	}{
		{name: "function defaults", url: "/paginacao", want: map[string]int{"skip": 0, "limit": 10}},
		{name: "function caps at 100", url: "/paginacao?skip=5&limit=500", want: map[string]int{"skip": 5, "limit": 100}},
		{name: "shared resolver caps at 50", url: "/paginacao-nova?limit=500", want: map[string]int{"skip": 0, "limit": 50}},
		{name: "shared resolver under cap", url: "/paginacao-nova?limit=20", want: map[string]int{"skip": 0, "limit": 20}},
		{name: "method one", url: "/paginacao-metodo-um?skip=2&limit=60", want: map[string]int{"skip": 2, "limit": 50}},
		{name: "method two defaults", url: "/paginacao-metodo-dois", want: map[string]int{"page": 1, "size": 10}},
		{name: "method two caps", url: "/paginacao-metodo-dois?page=4&size=99", want: map[string]int{"page": 4, "size": 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h, httptest.NewRequest("GET", tt.url, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, decodeJSON[map[string]int](t, rec))
		})
	}
}

func TestHandler_Pagination_Invalid(t *testing.T) {
	h := newTestHandler(t, nil)

	for _, url := range []string{
		"/paginacao?skip=-1",
		"/paginacao-nova?limit=-5",
		"/paginacao-metodo-um?limit=ten",
		"/paginacao-metodo-dois?page=0",
	} {
		rec := serve(t, h, httptest.NewRequest("GET", url, nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, url)
	}
}

func TestHandler_Protected(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest("GET", "/rota-protegida", nil)
	req.Header.Set("Token", "SECRET_VALUE")
	rec := serve(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"hello": "world"}, decodeJSON[map[string]string](t, rec))

	req = httptest.NewRequest("GET", "/rota-protegida", nil)
	req.Header.Set("Token", "wrong")
	rec = serve(t, h, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")

	rec = serve(t, h, httptest.NewRequest("GET", "/rota-protegida", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandler_Protected_LegacyPassthrough(t *testing.T) {
	config := &apihttp.HandlerConfig{
		Token: apitour.TokenChecker{Token: "SECRET_VALUE", Enforce: false},
	}
	h := apihttp.NewHandler(config, nil).Router()

	req := httptest.NewRequest("GET", "/rota-protegida", nil)
	req.Header.Set("Token", "wrong")
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hello":"world"`)
}

func TestHandler_CustomTokenHeader(t *testing.T) {
	config := &apihttp.HandlerConfig{
		Token:       apitour.NewTokenChecker("abc"),
		TokenHeader: "X-Api-Token",
	}
	h := apihttp.NewHandler(config, nil).Router()

	req := httptest.NewRequest("GET", "/rota-protegida", nil)
	req.Header.Set("X-Api-Token", "abc")
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(t, h, httptest.NewRequest("GET", "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")

	rec = serve(t, h, httptest.NewRequest("DELETE", "/index", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_CORS_Disabled(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest("GET", "/index", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandler_CORS_Enabled_Preflight(t *testing.T) {
	config := &apihttp.HandlerConfig{
		CORS: apihttp.CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"https://example.com"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Token", "Content-Type"},
			MaxAge:         300,
		},
	}
	h := apihttp.NewHandler(config, nil).Router()

	req := httptest.NewRequest("OPTIONS", "/rota-protegida", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "Token")
	rec := serve(t, h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
}

func TestHandler_Routes(t *testing.T) {
	config := &apihttp.HandlerConfig{}
	routes, err := apihttp.NewHandler(config, nil).Routes()
	require.NoError(t, err)

	got := make(map[string]bool, len(routes))
	for _, r := range routes {
		got[r.Method+" "+r.Pattern] = true
	}

	for _, want := range []string{
		"GET /", "GET /index", "GET /users", "GET /users/{id}", "POST /users",
		"POST /users/form", "GET /licence-plates/{licence}", "POST /file", "POST /files",
		"POST /password-match", "GET /html", "GET /text", "GET /xml", "GET /redirect",
		"GET /cat", "GET /paginacao", "GET /paginacao-nova", "GET /paginacao-metodo-um",
		"GET /paginacao-metodo-dois", "GET /rota-protegida",
	} {
		assert.True(t, got[want], "missing route %s", want)
	}
}

func TestHandler_ConcurrentRequests(t *testing.T) {
	h := newTestHandler(t, nil)

	done := make(chan int, 20)
	for i := range 20 {
		go func(limit int) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest("GET", "/paginacao-nova?limit="+strconv.Itoa(limit*5), nil))
			var page apitour.SkipLimit
			_ = json.NewDecoder(rec.Body).Decode(&page)
			done <- page.Limit - min(limit*5, 50)
		}(i)
	}
	for range 20 {
		assert.Equal(t, 0, <-done)
	}
}
