package apitour

import (
	"errors"
	"fmt"
)

// Source is the section of the request a parameter is read from.
type Source int

const (
	SourceUnknown Source = iota
	SourceQuery
	SourcePath
	SourceHeader
	SourceForm
	SourceBody
	SourceFile
	SourceFiles
)

func (s Source) String() string {
	switch s {
	case SourceQuery:
		return "query"
	case SourcePath:
		return "path"
	case SourceHeader:
		return "header"
	case SourceForm:
		return "form"
	case SourceBody:
		return "body"
	case SourceFile, SourceFiles:
		return "file"
	default:
		return "unknown"
	}
}

// Kind is the scalar type a raw value is coerced to.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Field declares one named input: its type, whether it is required, an
// optional default and the constraints applied after coercion.
type Field struct {
	Name        string
	Kind        Kind
	Required    bool
	Default     any
	Constraints []Constraint
}

// ParameterSpec declares where a Field comes from. Body specs describe a JSON
// object through Fields; File and Files specs ignore Kind.
type ParameterSpec struct {
	Field
	Source Source
	Fields []Field
}

// Option configures a Field at declaration time.
type Option func(*Field)

// Required marks the field as mandatory.
func Required() Option {
	return func(f *Field) { f.Required = true }
}

// Default sets the value used when the field is absent.
func Default(v any) Option {
	return func(f *Field) { f.Default = v }
}

// With appends constraints to the field.
func With(c ...Constraint) Option {
	return func(f *Field) { f.Constraints = append(f.Constraints, c...) }
}

func newField(name string, kind Kind, opts []Option) Field {
	f := Field{Name: name, Kind: kind}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Query declares a URL query parameter.
func Query(name string, kind Kind, opts ...Option) ParameterSpec {
	return ParameterSpec{Field: newField(name, kind, opts), Source: SourceQuery}
}

// Path declares a path template parameter. Path parameters are always required.
func Path(name string, kind Kind, opts ...Option) ParameterSpec {
	f := newField(name, kind, opts)
	f.Required = true
	return ParameterSpec{Field: f, Source: SourcePath}
}

// Header declares a request header. Underscores in name match hyphens in the header.
func Header(name string, kind Kind, opts ...Option) ParameterSpec {
	return ParameterSpec{Field: newField(name, kind, opts), Source: SourceHeader}
}

// Form declares a url-encoded or multipart form value.
func Form(name string, kind Kind, opts ...Option) ParameterSpec {
	return ParameterSpec{Field: newField(name, kind, opts), Source: SourceForm}
}

// Body declares a JSON object body with the given fields. The body itself is required.
func Body(name string, fields ...Field) ParameterSpec {
	return ParameterSpec{
		Field:  Field{Name: name, Required: true},
		Source: SourceBody,
		Fields: fields,
	}
}

// BodyField declares one member of a JSON body.
func BodyField(name string, kind Kind, opts ...Option) Field {
	return newField(name, kind, opts)
}

// File declares a single uploaded file.
func File(name string, opts ...Option) ParameterSpec {
	return ParameterSpec{Field: newField(name, KindString, opts), Source: SourceFile}
}

// Files declares an ordered list of uploaded files sharing one field name.
func Files(name string, opts ...Option) ParameterSpec {
	return ParameterSpec{Field: newField(name, KindString, opts), Source: SourceFiles}
}

// Validate checks that the spec is well formed. It is meant to run once at
// route registration time.
func (s ParameterSpec) Validate() error {
	if s.Name == "" {
		return errors.New("validate spec: name cannot be empty")
	}
	if s.Source == SourceUnknown || s.Source > SourceFiles {
		return fmt.Errorf("validate spec %q: unknown source", s.Name)
	}
	if s.Source == SourceBody {
		if len(s.Fields) == 0 {
			return fmt.Errorf("validate spec %q: body declares no fields", s.Name)
		}
		for _, f := range s.Fields {
			if err := f.validate(); err != nil {
				return fmt.Errorf("validate spec %q: %w", s.Name, err)
			}
		}
		return nil
	}
	if s.Source == SourceFile || s.Source == SourceFiles {
		if s.Default != nil {
			return fmt.Errorf("validate spec %q: files cannot have a default", s.Name)
		}
		return nil
	}
	if err := s.Field.validate(); err != nil {
		return fmt.Errorf("validate spec: %w", err)
	}
	return nil
}

func (f Field) validate() error {
	if f.Name == "" {
		return errors.New("field name cannot be empty")
	}
	if f.Default != nil {
		if _, err := coerceAny(f.Default, f.Kind); err != nil {
			return fmt.Errorf("field %q: default %v is not a valid %s", f.Name, f.Default, f.Kind)
		}
	}
	for _, c := range f.Constraints {
		if err := c.validateFor(f.Kind); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

// UploadedFile is a fully materialized multipart upload.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// FileInfo is the public description of an upload echoed back to clients.
type FileInfo struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// Info returns the echoable description of the file.
func (f UploadedFile) Info() FileInfo {
	return FileInfo{FileName: f.Filename, ContentType: f.ContentType}
}

// User is the payload accepted by the user creation endpoints.
type User struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// UserFromValues builds a User from a resolved body object or form values.
func UserFromValues(v Values) User {
	return User{Name: v.String("name"), Age: v.Int("age")}
}
