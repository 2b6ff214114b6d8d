package apitour

// Values holds resolved parameters keyed by spec name. A body spec resolves
// to a nested Values keyed by field name.
type Values map[string]any

// Has reports whether name was resolved, either supplied or defaulted.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Int(name string) int {
	n, _ := v[name].(int)
	return n
}

func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Object returns a resolved body spec.
func (v Values) Object(name string) Values {
	o, _ := v[name].(Values)
	return o
}

func (v Values) File(name string) UploadedFile {
	f, _ := v[name].(UploadedFile)
	return f
}

// Files returns uploads in the order they were sent.
func (v Values) Files(name string) []UploadedFile {
	f, _ := v[name].([]UploadedFile)
	return f
}
