package apitour

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// DefaultMaxMemory is the multipart size kept in memory before spilling to disk.
const DefaultMaxMemory = 32 << 20

// PathParamFunc returns the value captured by the router for a path parameter.
type PathParamFunc func(r *http.Request, name string) string

// Resolver extracts, coerces and validates declared parameters from requests.
// A Resolver is immutable after construction and safe for concurrent use.
type Resolver struct {
	pathParam PathParamFunc
	maxMemory int64
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithPathParam sets how path parameters are looked up. The default uses
// http.Request.PathValue.
func WithPathParam(fn PathParamFunc) ResolverOption {
	return func(r *Resolver) {
		if fn != nil {
			r.pathParam = fn
		}
	}
}

// WithMaxMemory sets the multipart in-memory threshold.
func WithMaxMemory(n int64) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.maxMemory = n
		}
	}
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		pathParam: func(req *http.Request, name string) string { return req.PathValue(name) },
		maxMemory: DefaultMaxMemory,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ValidateSpecs checks every spec and rejects duplicate names.
func ValidateSpecs(specs []ParameterSpec) error {
	seen := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("validate specs: duplicate parameter %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}

// Resolve resolves a single spec. It returns (nil, nil) for an optional
// parameter that is absent and has no default.
func (rs *Resolver) Resolve(req *http.Request, spec ParameterSpec) (any, error) {
	st := newRequestState(req)
	v, _, errs := rs.resolve(st, spec)
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return v, nil
}

// ResolveAll resolves every spec independently. When any of them fails the
// returned *ValidationError lists all failures, not only the first.
func (rs *Resolver) ResolveAll(req *http.Request, specs []ParameterSpec) (Values, error) {
	st := newRequestState(req)
	vals := make(Values, len(specs))

	var all []*FieldError
	// Form and body parse failures are cached on st and shared by every spec
	// reading that source; each is reported once.
	seen := make(map[*FieldError]struct{})
	for _, spec := range specs {
		v, ok, errs := rs.resolve(st, spec)
		if len(errs) > 0 {
			for _, fe := range errs {
				if _, dup := seen[fe]; dup {
					continue
				}
				seen[fe] = struct{}{}
				all = append(all, fe)
			}
			continue
		}
		if ok {
			vals[spec.Name] = v
		}
	}

	if len(all) > 0 {
		return nil, &ValidationError{Errors: all}
	}
	return vals, nil
}

func (rs *Resolver) resolve(st *requestState, spec ParameterSpec) (any, bool, []*FieldError) {
	switch spec.Source {
	case SourceBody:
		return rs.resolveBody(st, spec)
	case SourceFile, SourceFiles:
		return rs.resolveFiles(st, spec)
	case SourceQuery, SourcePath, SourceHeader, SourceForm:
		return rs.resolveScalar(st, spec)
	default:
		return nil, false, []*FieldError{schemaError(spec.Name, spec.Source, "source", "", "unknown parameter source")}
	}
}

func (rs *Resolver) resolveScalar(st *requestState, spec ParameterSpec) (any, bool, []*FieldError) {
	path := qualify(spec.Source, spec.Name)

	raw, has, perr := rs.lookup(st, spec)
	if perr != nil {
		return nil, false, []*FieldError{perr}
	}

	if !has {
		return absent(spec.Field, spec.Source, path)
	}

	v, err := coerceString(raw, spec.Kind)
	if err != nil {
		return nil, false, []*FieldError{schemaError(path, spec.Source, "type", raw, typeMessage(spec.Kind))}
	}

	if errs := checkConstraints(spec.Field, spec.Source, path, v, raw); len(errs) > 0 {
		return nil, false, errs
	}
	return v, true, nil
}

// absent applies the default or required policy to a missing value.
func absent(f Field, src Source, path string) (any, bool, []*FieldError) {
	if f.Default != nil {
		v, err := coerceAny(f.Default, f.Kind)
		if err != nil {
			return nil, false, []*FieldError{schemaError(path, src, "default", fmt.Sprint(f.Default), typeMessage(f.Kind))}
		}
		return v, true, nil
	}
	if f.Required {
		fe := missing(src, f.Name)
		fe.Field = path
		return nil, false, []*FieldError{fe}
	}
	return nil, false, nil
}

func (rs *Resolver) lookup(st *requestState, spec ParameterSpec) (string, bool, *FieldError) {
	switch spec.Source {
	case SourceQuery:
		q := st.queryValues()
		if !q.Has(spec.Name) {
			return "", false, nil
		}
		return q.Get(spec.Name), true, nil
	case SourcePath:
		raw := rs.pathParam(st.req, spec.Name)
		return raw, raw != "", nil
	case SourceHeader:
		values := st.req.Header.Values(strings.ReplaceAll(spec.Name, "_", "-"))
		if len(values) == 0 {
			return "", false, nil
		}
		return values[0], true, nil
	case SourceForm:
		if fe := st.parseForm(rs.maxMemory); fe != nil {
			return "", false, fe
		}
		if !st.req.PostForm.Has(spec.Name) {
			return "", false, nil
		}
		return st.req.PostForm.Get(spec.Name), true, nil
	default:
		return "", false, nil
	}
}

func (rs *Resolver) resolveFiles(st *requestState, spec ParameterSpec) (any, bool, []*FieldError) {
	path := qualify(spec.Source, spec.Name)

	if fe := st.parseForm(rs.maxMemory); fe != nil {
		return nil, false, []*FieldError{fe}
	}

	var headers []*multipart.FileHeader
	if st.req.MultipartForm != nil {
		headers = st.req.MultipartForm.File[spec.Name]
	}

	if len(headers) == 0 {
		if spec.Required {
			fe := missing(spec.Source, spec.Name)
			fe.Field = path
			return nil, false, []*FieldError{fe}
		}
		if spec.Source == SourceFiles {
			return []UploadedFile{}, true, nil
		}
		return nil, false, nil
	}

	files := make([]UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := materialize(fh)
		if err != nil {
			return nil, false, []*FieldError{schemaError(path, spec.Source, "upload", fh.Filename, "Uploaded file could not be read")}
		}
		files = append(files, f)
	}

	if spec.Source == SourceFile {
		return files[0], true, nil
	}
	return files, true, nil
}

func materialize(fh *multipart.FileHeader) (UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return UploadedFile{}, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("read upload: %w", err)
	}

	return UploadedFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        int64(len(content)),
		Content:     content,
	}, nil
}

func (rs *Resolver) resolveBody(st *requestState, spec ParameterSpec) (any, bool, []*FieldError) {
	if fe := st.readBody(); fe != nil {
		return nil, false, []*FieldError{fe}
	}

	if st.body == nil {
		if spec.Required {
			fe := missing(SourceBody, spec.Name)
			fe.Field = "body"
			return nil, false, []*FieldError{fe}
		}
		return nil, false, nil
	}

	obj := make(Values, len(spec.Fields))
	var errs []*FieldError
	for _, f := range spec.Fields {
		path := "body." + f.Name

		raw, has := st.body[f.Name]
		if !has || raw == nil {
			if f.Default == nil && f.Required {
				errs = append(errs, schemaError(path, SourceBody, "required", "", "Field required"))
				continue
			}
			v, ok, ferrs := absent(f, SourceBody, path)
			errs = append(errs, ferrs...)
			if ok {
				obj[f.Name] = v
			}
			continue
		}

		rawText := fmt.Sprint(raw)
		v, err := coerceAny(raw, f.Kind)
		if err != nil {
			errs = append(errs, schemaError(path, SourceBody, "type", rawText, typeMessage(f.Kind)))
			continue
		}

		if cerrs := checkConstraints(f, SourceBody, path, v, rawText); len(cerrs) > 0 {
			errs = append(errs, cerrs...)
			continue
		}
		obj[f.Name] = v
	}

	if len(errs) > 0 {
		return nil, false, errs
	}
	return obj, true, nil
}

// requestState caches the parts of a request that can only be consumed once.
type requestState struct {
	req *http.Request

	query url.Values

	formParsed bool
	formErr    *FieldError

	bodyRead bool
	body     map[string]any
	bodyErr  *FieldError
}

func newRequestState(req *http.Request) *requestState {
	return &requestState{req: req}
}

func (st *requestState) queryValues() url.Values {
	if st.query == nil {
		st.query = st.req.URL.Query()
	}
	return st.query
}

func (st *requestState) parseForm(maxMemory int64) *FieldError {
	if st.formParsed {
		return st.formErr
	}
	st.formParsed = true

	var err error
	mediaType, _, _ := mime.ParseMediaType(st.req.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		err = st.req.ParseMultipartForm(maxMemory)
	} else {
		err = st.req.ParseForm()
	}
	if err != nil {
		st.formErr = schemaError("form", SourceForm, "parse", "", "Form data could not be parsed")
	}
	if st.req.PostForm == nil {
		st.req.PostForm = url.Values{}
	}
	return st.formErr
}

func (st *requestState) readBody() *FieldError {
	if st.bodyRead {
		return st.bodyErr
	}
	st.bodyRead = true

	if st.req.Body == nil || st.req.Body == http.NoBody {
		return nil
	}

	data, err := io.ReadAll(st.req.Body)
	if err != nil {
		st.bodyErr = schemaError("body", SourceBody, "read", "", "Request body could not be read")
		return st.bodyErr
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			st.bodyErr = schemaError("body", SourceBody, "type", "", "Input should be a valid object")
		} else {
			st.bodyErr = schemaError("body", SourceBody, "json", "", "JSON decode error")
		}
		return st.bodyErr
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		st.bodyErr = schemaError("body", SourceBody, "json", "", "JSON decode error")
		return st.bodyErr
	}
	if obj == nil {
		st.bodyErr = schemaError("body", SourceBody, "type", "null", "Input should be a valid object")
		return st.bodyErr
	}

	st.body = obj
	return nil
}
