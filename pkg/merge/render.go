package merge

import (
	"bytes"
	"encoding/json"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// Render serializes v for its target format. JSON is indented with two
// spaces and object keys are sorted. A value that fails to serialize is a
// bug in this package, so Render panics rather than returning an error.
func Render(v Value) string {
	switch v := v.(type) {
	case nil, Empty:
		return ""
	case JSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v.Tree); err != nil {
			panic(fmt.Sprintf("serialize json value: %v", err))
		}
		return buf.String()
	case TOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(v.Tree); err != nil {
			panic(fmt.Sprintf("serialize toml value: %v", err))
		}
		return buf.String()
	case Text:
		return string(v)
	}
	panic(fmt.Sprintf("render: unknown value variant %T", v))
}
