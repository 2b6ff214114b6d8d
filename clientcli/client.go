package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs operations against an apitour server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()
	cfg.Endpoint = strings.TrimSuffix(cfg.Endpoint, "/")

	c := &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the normalized server URL.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// Index calls GET /index and returns the greeting.
func (c *Client) Index(ctx context.Context) (string, error) {
	var out struct {
		Msg string `json:"msg"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/index", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Msg, nil
}

// ListUsers calls GET /users.
func (c *Client) ListUsers(ctx context.Context, opts ListUsersOptions) (UserPage, error) {
	query := url.Values{}
	if opts.Page != 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Size != 0 {
		query.Set("size", strconv.Itoa(opts.Size))
	}

	var out UserPage
	if err := c.doJSON(ctx, http.MethodGet, "/users", query, nil, &out); err != nil {
		return UserPage{}, err
	}
	return out, nil
}

// GetUser calls GET /users/{id}.
func (c *Client) GetUser(ctx context.Context, id int) (int, error) {
	var out struct {
		ID int `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+strconv.Itoa(id), nil, nil, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// LicencePlate calls GET /licence-plates/{licence}.
func (c *Client) LicencePlate(ctx context.Context, licence string) (string, error) {
	if licence == "" {
		return "", fmt.Errorf("licence plate: %w", ErrEmptyPath)
	}

	var out struct {
		Licence string `json:"licence"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/licence-plates/"+url.PathEscape(licence), nil, nil, &out); err != nil {
		return "", err
	}
	return out.Licence, nil
}

// CreateUser calls POST /users with a JSON body.
func (c *Client) CreateUser(ctx context.Context, user User) (User, error) {
	body, err := json.Marshal(user)
	if err != nil {
		return User{}, fmt.Errorf("marshal user: %w", err)
	}

	var out User
	req := &request{body: bytes.NewReader(body), contentType: "application/json"}
	if err := c.doJSON(ctx, http.MethodPost, "/users", nil, req, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

// CreateUserForm calls POST /users/form with a url-encoded body.
func (c *Client) CreateUserForm(ctx context.Context, user User) (User, error) {
	form := url.Values{}
	form.Set("name", user.Name)
	form.Set("age", strconv.Itoa(user.Age))

	var out User
	req := &request{body: strings.NewReader(form.Encode()), contentType: "application/x-www-form-urlencoded"}
	if err := c.doJSON(ctx, http.MethodPost, "/users/form", nil, req, &out); err != nil {
		return User{}, err
	}
	return out, nil
}

// Upload sends files as multipart/form-data. A single path goes to POST /file
// unless opts.Multiple is set; several paths always go to POST /files.
func (c *Client) Upload(ctx context.Context, opts UploadOptions) ([]FileInfo, error) {
	if len(opts.Paths) == 0 {
		return nil, ErrNoPaths
	}
	for _, p := range opts.Paths {
		if p == "" {
			return nil, fmt.Errorf("upload: %w", ErrEmptyPath)
		}
	}

	single := len(opts.Paths) == 1 && !opts.Multiple
	field, path := "files", "/files"
	if single {
		field, path = "file", "/file"
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	// Stream the files through the pipe so large uploads are not buffered.
	go func() {
		pw.CloseWithError(writeParts(mw, field, opts))
	}()

	req := &request{body: pr, contentType: mw.FormDataContentType()}

	if single {
		var out FileInfo
		if err := c.doJSON(ctx, http.MethodPost, path, nil, req, &out); err != nil {
			_ = pr.CloseWithError(err)
			return nil, err
		}
		return []FileInfo{out}, nil
	}

	var out []FileInfo
	if err := c.doJSON(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		_ = pr.CloseWithError(err)
		return nil, err
	}
	return out, nil
}

func writeParts(mw *multipart.Writer, field string, opts UploadOptions) error {
	for _, p := range opts.Paths {
		if err := writePart(mw, field, p, opts.ContentType); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writePart(mw *multipart.Writer, field, localPath, contentType string) error {
	file, err := os.Open(localPath) //#nosec G304 -- localPath is user-provided input
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if contentType == "" {
		contentType = detectContentType(localPath)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     field,
		"filename": filepath.Base(localPath),
	}))
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy file contents: %w", err)
	}
	return nil
}

// Hello calls GET / with the hello header.
func (c *Client) Hello(ctx context.Context, value string) (string, error) {
	var out struct {
		Hello string `json:"hello"`
	}
	req := &request{header: http.Header{"Hello": []string{value}}}
	if err := c.doJSON(ctx, http.MethodGet, "/", nil, req, &out); err != nil {
		return "", err
	}
	return out.Hello, nil
}

// PasswordMatch calls POST /password-match. A mismatch is returned as an
// *APIError matching ErrBadRequest.
func (c *Client) PasswordMatch(ctx context.Context, password, confirm string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"password":         password,
		"password_confirm": confirm,
	})
	if err != nil {
		return "", fmt.Errorf("marshal passwords: %w", err)
	}

	var out struct {
		Message string `json:"message"`
	}
	req := &request{body: bytes.NewReader(body), contentType: "application/json"}
	if err := c.doJSON(ctx, http.MethodPost, "/password-match", nil, req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Paginate calls the pagination route selected by variant.
func (c *Client) Paginate(ctx context.Context, variant Variant, opts PaginateOptions) (Window, error) {
	path := variant.path()
	if path == "" {
		return Window{}, fmt.Errorf("paginate %q: %w", variant, ErrUnknownVariant)
	}

	query := url.Values{}
	setInt := func(key string, v *int) {
		if v != nil {
			query.Set(key, strconv.Itoa(*v))
		}
	}
	if variant == VariantPage {
		setInt("page", opts.Page)
		setInt("size", opts.Size)
	} else {
		setInt("skip", opts.Skip)
		setInt("limit", opts.Limit)
	}

	var out map[string]int
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return Window{}, err
	}

	w := Window{Variant: variant}
	pick := func(key string) *int {
		if v, ok := out[key]; ok {
			return &v
		}
		return nil
	}
	w.Skip, w.Limit, w.Page, w.Size = pick("skip"), pick("limit"), pick("page"), pick("size")
	return w, nil
}

// Protected calls GET /rota-protegida with the configured token.
func (c *Client) Protected(ctx context.Context) (string, error) {
	var out struct {
		Hello string `json:"hello"`
	}
	req := &request{header: http.Header{}}
	if c.config.Token != "" {
		req.header.Set(c.config.TokenHeader, c.config.Token)
	}
	if err := c.doJSON(ctx, http.MethodGet, "/rota-protegida", nil, req, &out); err != nil {
		return "", err
	}
	return out.Hello, nil
}

// Ping reports whether the server answers GET /index.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Index(ctx)
	return err
}

type request struct {
	body        io.Reader
	contentType string
	header      http.Header
}

// doJSON sends a request and decodes a 2xx JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, r *request, out any) error {
	target := c.config.Endpoint + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader = http.NoBody
	if r != nil && r.body != nil {
		body = r.body
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r != nil {
		if r.contentType != "" {
			req.Header.Set("Content-Type", r.contentType)
		}
		for k, vs := range r.header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseServerError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// detectContentType returns MIME type based on file extension.
func detectContentType(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return "application/octet-stream"
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}

	return mimeType
}

// ErrorDetail is one failed parameter reported by the server.
type ErrorDetail struct {
	Field   string `json:"field"`
	Source  string `json:"source"`
	Rule    string `json:"rule"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// parseServerError extracts the error body from a server response.
func parseServerError(statusCode int, body []byte) error {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var decoded struct {
		Error   string        `json:"error"`
		Message string        `json:"message"`
		Details []ErrorDetail `json:"details"`
	}
	if err := json.Unmarshal(body, &decoded); err == nil {
		apiErr.Code = decoded.Error
		apiErr.Message = decoded.Message
		apiErr.Details = decoded.Details
	}

	return apiErr
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []ErrorDetail
	Body       string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
	}

	var b strings.Builder
	b.WriteString("server error: ")
	b.WriteString(strconv.Itoa(e.StatusCode))
	b.WriteString(" - ")
	b.WriteString(e.Code)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	for i, d := range e.Details {
		if i == 0 {
			b.WriteString(" (")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(d.Field)
		b.WriteString(": ")
		b.WriteString(d.Message)
	}
	if len(e.Details) > 0 {
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the requested resource does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrBadRequest is returned for mismatched passwords and invalid input (400).
	ErrBadRequest = &APIError{StatusCode: http.StatusBadRequest}

	// ErrForbidden is returned when the token is missing or wrong (403).
	ErrForbidden = &APIError{StatusCode: http.StatusForbidden}

	// ErrValidation is returned when request parameters fail validation (422).
	ErrValidation = &APIError{StatusCode: http.StatusUnprocessableEntity}
)
