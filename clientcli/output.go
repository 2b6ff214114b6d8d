package clientcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Formatter formats results for output.
type Formatter interface {
	FormatMessage(w io.Writer, key string, value any) error
	FormatUser(w io.Writer, user User) error
	FormatUserPage(w io.Writer, page UserPage) error
	FormatUploads(w io.Writer, files []FileInfo) error
	FormatWindow(w io.Writer, window Window) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatMessage prints a single value. In quiet mode only the value is printed.
func (f *HumanFormatter) FormatMessage(w io.Writer, key string, value any) error {
	if f.Quiet {
		_, _ = fmt.Fprintln(w, value)
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s: %v\n", key, value)
	return nil
}

func (f *HumanFormatter) FormatUser(w io.Writer, user User) error {
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Name: %s\n", user.Name)
	_, _ = fmt.Fprintf(w, "Age:  %d\n", user.Age)
	return nil
}

func (f *HumanFormatter) FormatUserPage(w io.Writer, page UserPage) error {
	if f.Quiet {
		_, _ = fmt.Fprintf(w, "%d %d\n", page.Page, page.Size)
		return nil
	}
	_, _ = fmt.Fprintf(w, "Page: %d\n", page.Page)
	_, _ = fmt.Fprintf(w, "Size: %d\n", page.Size)
	return nil
}

// FormatUploads prints one line per uploaded file.
func (f *HumanFormatter) FormatUploads(w io.Writer, files []FileInfo) error {
	if f.Quiet {
		return nil
	}
	for _, fi := range files {
		_, _ = fmt.Fprintf(w, "Uploaded: %s (%s)\n", fi.FileName, fi.ContentType)
	}
	return nil
}

// FormatWindow prints the fields of the resolved window.
func (f *HumanFormatter) FormatWindow(w io.Writer, window Window) error {
	var parts []string
	add := func(key string, v *int) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s=%d", key, *v))
		}
	}
	add("skip", window.Skip)
	add("limit", window.Limit)
	add("page", window.Page)
	add("size", window.Size)

	if f.Quiet {
		_, _ = fmt.Fprintln(w, strings.Join(parts, " "))
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", window.Variant, strings.Join(parts, " "))
	return nil
}

// FormatError formats an error as human-readable text. Validation details
// are listed one per line.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || len(apiErr.Details) == 0 {
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
		return nil
	}

	msg := apiErr.Message
	if msg == "" {
		msg = apiErr.Code
	}
	_, _ = fmt.Fprintf(w, "Error: %s (%d)\n", msg, apiErr.StatusCode)
	for _, d := range apiErr.Details {
		if d.Value != "" {
			_, _ = fmt.Fprintf(w, "  %s: %s [got %q]\n", d.Field, d.Message, d.Value)
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s: %s\n", d.Field, d.Message)
	}
	return nil
}

// FormatProfileList formats a list of profiles as human-readable text.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	maxNameLen := 4     // "NAME"
	maxEndpointLen := 8 // "ENDPOINT"
	for i := range profiles {
		maxNameLen = max(maxNameLen, len(profiles[i].Name))
		maxEndpointLen = max(maxEndpointLen, len(profiles[i].Endpoint))
	}
	maxNameLen = min(maxNameLen, 20)
	maxEndpointLen = min(maxEndpointLen, 50)

	_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %s\n", maxNameLen, "NAME", maxEndpointLen, "ENDPOINT", "TOKEN")
	_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", maxEndpointLen), strings.Repeat("-", 20))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		_, _ = fmt.Fprintf(w, "%s %-*s  %-*s  %s\n",
			marker,
			maxNameLen, truncate(p.Name, maxNameLen),
			maxEndpointLen, truncate(p.Endpoint, maxEndpointLen),
			maskSecret(p.Token, showSecrets),
		)
	}

	return nil
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	_, _ = fmt.Fprintf(w, "Name:         %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Endpoint:     %s\n", profile.Endpoint)
	_, _ = fmt.Fprintf(w, "Token:        %s\n", maskSecret(profile.Token, showSecrets))
	header := profile.TokenHeader
	if header == "" {
		header = DefaultTokenHeader
	}
	_, _ = fmt.Fprintf(w, "Token Header: %s\n", header)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatMessage(w io.Writer, key string, value any) error {
	return writeJSON(w, map[string]any{key: value})
}

func (f *JSONFormatter) FormatUser(w io.Writer, user User) error {
	return writeJSON(w, user)
}

func (f *JSONFormatter) FormatUserPage(w io.Writer, page UserPage) error {
	return writeJSON(w, page)
}

func (f *JSONFormatter) FormatUploads(w io.Writer, files []FileInfo) error {
	output := struct {
		Files []FileInfo `json:"files"`
	}{
		Files: files,
	}
	if output.Files == nil {
		output.Files = []FileInfo{}
	}
	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatWindow(w io.Writer, window Window) error {
	return writeJSON(w, window)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error   string        `json:"error"`
		Status  int           `json:"status,omitempty"`
		Code    string        `json:"code,omitempty"`
		Details []ErrorDetail `json:"details,omitempty"`
	}{
		Error: err.Error(),
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		output.Status = apiErr.StatusCode
		output.Code = apiErr.Code
		output.Details = apiErr.Details
	}
	return writeJSON(w, output)
}

type jsonProfile struct {
	Name        string `json:"name"`
	Endpoint    string `json:"endpoint"`
	Token       string `json:"token"`
	TokenHeader string `json:"token_header,omitempty"`
	Default     bool   `json:"default"`
}

func toJSONProfile(p *Profile, isDefault, showSecrets bool) jsonProfile {
	return jsonProfile{
		Name:        p.Name,
		Endpoint:    p.Endpoint,
		Token:       maskSecret(p.Token, showSecrets),
		TokenHeader: p.TokenHeader,
		Default:     isDefault,
	}
}

// FormatProfileList formats a list of profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string, showSecrets bool) error {
	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		output.Profiles[i] = toJSONProfile(&profiles[i], profiles[i].Name == defaultName, showSecrets)
	}

	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault, showSecrets bool) error {
	return writeJSON(w, toJSONProfile(&profile, isDefault, showSecrets))
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// maskSecret masks a secret string, showing only first 4 and last 4 characters.
// If showSecrets is true, returns the original value.
// If the secret is too short, returns all asterisks.
func maskSecret(secret string, showSecrets bool) string {
	if showSecrets {
		return secret
	}
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "********"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
