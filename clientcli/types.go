package clientcli

import "strings"

// User is the payload of the user creation routes.
type User struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

// ListUsersOptions configures GET /users. Zero values are not sent, so the
// server defaults apply.
type ListUsersOptions struct {
	Page int
	Size int
}

// UserPage is the response of GET /users.
type UserPage struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// FileInfo describes an uploaded file as echoed by the server.
type FileInfo struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

// UploadOptions configures an upload.
type UploadOptions struct {
	Paths       []string
	ContentType string // optional, auto-detect if empty
	Multiple    bool   // send to /files even for a single path
}

// Variant selects one of the pagination routes.
type Variant string

const (
	VariantFunction Variant = "function"   // GET /paginacao, capped at 100
	VariantShared   Variant = "shared"     // GET /paginacao-nova
	VariantSkip     Variant = "skip-limit" // GET /paginacao-metodo-um
	VariantPage     Variant = "page-size"  // GET /paginacao-metodo-dois
)

// Variants lists every pagination variant in route order.
var Variants = []Variant{VariantFunction, VariantShared, VariantSkip, VariantPage}

// ParseVariant accepts a variant name or its route path.
func ParseVariant(s string) (Variant, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "/")
	for _, v := range Variants {
		if s == string(v) || s == strings.TrimPrefix(v.path(), "/") {
			return v, nil
		}
	}
	return "", ErrUnknownVariant
}

func (v Variant) path() string {
	switch v {
	case VariantFunction:
		return "/paginacao"
	case VariantShared:
		return "/paginacao-nova"
	case VariantSkip:
		return "/paginacao-metodo-um"
	case VariantPage:
		return "/paginacao-metodo-dois"
	default:
		return ""
	}
}

// PaginateOptions configures a pagination request. Nil fields are not sent.
type PaginateOptions struct {
	Skip  *int
	Limit *int
	Page  *int
	Size  *int
}

// Window is a resolved pagination window. Only the fields of the requested
// variant are set.
type Window struct {
	Variant Variant `json:"variant"`
	Skip    *int    `json:"skip,omitempty"`
	Limit   *int    `json:"limit,omitempty"`
	Page    *int    `json:"page,omitempty"`
	Size    *int    `json:"size,omitempty"`
}
