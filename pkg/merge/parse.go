package merge

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/dotpatch/pkg/errors"
	"github.com/arthur-debert/dotpatch/pkg/format"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"github.com/tidwall/jsonc"
)

// Parse decodes text according to tag. Targets without an extension are
// parsed as TagText; any tag other than the known ones, the empty tag
// included, is UNSUPPORTED_FORMAT.
func Parse(tag format.Tag, text string) (Value, error) {
	switch tag {
	case format.TagJSON:
		return parseJSON(text)
	case format.TagTOML:
		return parseTOML(text)
	case format.TagText:
		return Text(text), nil
	}
	return nil, errors.Newf(errors.ErrUnsupportedFormat, "unsupported format: %q", string(tag)).
		WithDetail("format", string(tag))
}

// parseJSON accepts JSON with // and /* */ comments and trailing commas
func parseJSON(text string) (Value, error) {
	if !utf8.ValidString(text) {
		return nil, errors.New(errors.ErrParse, "invalid json: input is not valid UTF-8")
	}
	stripped := jsonc.ToJSON([]byte(text))
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil, errors.Newf(errors.ErrEmptyDocument, "possible empty json: %q", abbreviate(text))
	}

	dec := json.NewDecoder(bytes.NewReader(stripped))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "invalid json")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrParse, "invalid json: unexpected data after top-level value")
	}
	return JSON{Tree: tree}, nil
}

// parseTOML decodes a TOML document. A blank document is a valid empty table.
func parseTOML(text string) (Value, error) {
	if !utf8.ValidString(text) {
		return nil, errors.New(errors.ErrParse, "invalid toml: input is not valid UTF-8")
	}
	var tree map[string]any
	if err := toml.Unmarshal([]byte(text), &tree); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "invalid toml")
	}
	if tree == nil {
		tree = map[string]any{}
	}

	inline, err := inlineTables([]byte(text))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "invalid toml")
	}
	return TOML{Tree: tree, inline: inline}, nil
}

// inlineTables returns the paths of the keys assigned an inline table,
// joined by keyPath. Keys inside inline tables and arrays are not listed.
func inlineTables(data []byte) (map[string]struct{}, error) {
	var p unstable.Parser
	p.Reset(data)

	var table string
	var paths map[string]struct{}
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = joinKey("", expr.Key())
		case unstable.KeyValue:
			if expr.Value().Kind != unstable.InlineTable {
				continue
			}
			if paths == nil {
				paths = make(map[string]struct{})
			}
			paths[joinKey(table, expr.Key())] = struct{}{}
		}
	}
	return paths, p.Error()
}

func joinKey(prefix string, it unstable.Iterator) string {
	path := prefix
	for it.Next() {
		path = keyPath(path, string(it.Node().Data))
	}
	return path
}

func abbreviate(text string) string {
	const limit = 64
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
