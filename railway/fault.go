package railway

// Well-known error codes shared across components.
const (
	CodeMissing  = "missing"
	CodeNotFound = "not_found"
	CodeIncluded = "included"
	CodeInvalid  = "invalid"
	CodeBlank    = "blank"
)

// Fault is a structured validation/operation failure. Either Code or
// Message must be set (both may be).
type Fault struct {
	Producer Component
	Code     string
	Message  string
	Path     Path
	Tokens   Attrs
}

// WithPrefix returns a copy of f with prefix prepended to its Path, used by
// Namespace and Collection to locate a child's error inside the enclosing
// input.
func (f Fault) WithPrefix(prefix Path) Fault {
	f.Path = prefix.Join(f.Path...)
	return f
}
