package merge

// Value is a parsed configuration document
type Value interface {
	isValue()
}

// Empty is the zero value and the identity for Merge
type Empty struct{}

// JSON holds a decoded JSON document. Objects are map[string]any, arrays
// []any, numbers json.Number.
type JSON struct {
	Tree any
}

// TOML holds a decoded TOML document. Keys assigned an inline table are
// remembered so a merge replaces them instead of recursing.
type TOML struct {
	Tree map[string]any

	inline map[string]struct{}
}

// Text is opaque content merged by concatenation
type Text string

func (Empty) isValue() {}
func (JSON) isValue()  {}
func (TOML) isValue()  {}
func (Text) isValue()  {}

// Kind names the variant of v, for logs and error messages
func Kind(v Value) string {
	switch v.(type) {
	case nil, Empty:
		return "empty"
	case JSON:
		return "json"
	case TOML:
		return "toml"
	case Text:
		return "text"
	}
	return "unknown"
}
