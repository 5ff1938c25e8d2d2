package merge

import (
	"iter"

	"github.com/arthur-debert/dotpatch/pkg/errors"
)

// Merge combines acc with next, next taking precedence.
//
//   - Empty on either side yields the other value.
//   - JSON and TOML merge objects/tables key by key, recursing where both
//     sides hold a table; any other value replaces the old one wholesale.
//     Arrays are never merged element-wise and null is kept as a value.
//     A TOML inline table in next counts as a value, not a table.
//   - Text concatenates with a single "\n" between the two sides.
//
// Inputs are not modified.
func Merge(acc, next Value) (Value, error) {
	if isEmpty(acc) {
		if next == nil {
			return Empty{}, nil
		}
		return next, nil
	}
	if isEmpty(next) {
		return acc, nil
	}

	switch a := acc.(type) {
	case JSON:
		if n, ok := next.(JSON); ok {
			return JSON{Tree: mergeTree(a.Tree, n.Tree)}, nil
		}
	case TOML:
		if n, ok := next.(TOML); ok {
			return TOML{Tree: mergeTOML(a.Tree, n.Tree, n.inline, "")}, nil
		}
	case Text:
		if n, ok := next.(Text); ok {
			return a + "\n" + n, nil
		}
	default:
		return nil, errors.Newf(errors.ErrInternal, "unknown value variant %T", acc)
	}

	return nil, errors.Newf(errors.ErrIncompatibleTypes,
		"cannot merge %s into %s", Kind(next), Kind(acc)).
		WithDetail("accumulated", Kind(acc)).
		WithDetail("next", Kind(next))
}

// Fold merges every value yielded by values onto seed, in order. The first
// error, from the sequence or from Merge, stops the fold.
func Fold(seed Value, values iter.Seq2[Value, error]) (Value, error) {
	acc := seed
	if acc == nil {
		acc = Empty{}
	}
	for v, err := range values {
		if err != nil {
			return nil, err
		}
		acc, err = Merge(acc, v)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// FoldValues folds already parsed values onto Empty
func FoldValues(values ...Value) (Value, error) {
	return Fold(Empty{}, func(yield func(Value, error) bool) {
		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	})
}

func isEmpty(v Value) bool {
	switch v.(type) {
	case nil, Empty:
		return true
	}
	return false
}

// mergeTree applies merge-patch semantics without deletion: when patch is an
// object it is laid over base (if base is an object too), otherwise patch
// replaces base.
func mergeTree(base, patch any) any {
	patchMap, ok := patch.(map[string]any)
	if !ok {
		return patch
	}
	baseMap, ok := base.(map[string]any)
	if !ok {
		return patch
	}
	return mergeTables(baseMap, patchMap)
}

func mergeTables(base, patch map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		result[k] = v
	}

	for k, patchVal := range patch {
		baseVal, exists := result[k]
		baseMap, baseIsMap := baseVal.(map[string]any)
		patchMap, patchIsMap := patchVal.(map[string]any)

		if exists && baseIsMap && patchIsMap {
			result[k] = mergeTables(baseMap, patchMap)
		} else {
			result[k] = patchVal
		}
	}

	return result
}

// mergeTOML is mergeTables for TOML, where the keys listed in inline hold
// inline tables and replace whatever base has at that key.
func mergeTOML(base, patch map[string]any, inline map[string]struct{}, prefix string) map[string]any {
	if len(inline) == 0 {
		return mergeTables(base, patch)
	}

	result := make(map[string]any, len(base)+len(patch))
	for k, v := range base {
		result[k] = v
	}

	for k, patchVal := range patch {
		path := keyPath(prefix, k)
		baseMap, baseIsMap := result[k].(map[string]any)
		patchMap, patchIsMap := patchVal.(map[string]any)
		_, isInline := inline[path]

		if baseIsMap && patchIsMap && !isInline {
			result[k] = mergeTOML(baseMap, patchMap, inline, path)
		} else {
			result[k] = patchVal
		}
	}

	return result
}

func keyPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "\x00" + key
}
