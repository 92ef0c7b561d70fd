package jsonpatch

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
)

// Op is one RFC 6902 operation. Remove operations carry no value.
type Op struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

func (o Op) MarshalJSON() ([]byte, error) {
	if o.Op == "remove" {
		return json.Marshal(struct {
			Op   string `json:"op"`
			Path string `json:"path"`
		}{o.Op, o.Path})
	}
	type op Op
	return json.Marshal(op(o))
}

// DiffDocuments decodes two JSON documents and returns the patch turning
// from into to. An empty, non-nil slice means the documents are equal.
func DiffDocuments(from, to []byte) ([]Op, error) {
	var a, b any
	if err := json.Unmarshal(from, &a); err != nil {
		return nil, errors.Wrap(err, "decoding source document")
	}
	if err := json.Unmarshal(to, &b); err != nil {
		return nil, errors.Wrap(err, "decoding target document")
	}
	ops := Diff(a, b, "")
	if ops == nil {
		ops = []Op{}
	}
	return ops, nil
}

// Diff computes the patch transforming a into b, both being values produced
// by decoding JSON into any. Object keys are visited in sorted order so the
// result is deterministic. Path is "" for the document root.
func Diff(a, b any, path string) []Op {
	switch av := a.(type) {
	case map[string]any:
		if bv, ok := b.(map[string]any); ok {
			return diffObjects(av, bv, path)
		}
	case []any:
		if bv, ok := b.([]any); ok {
			return diffArrays(av, bv, path)
		}
	default:
		switch b.(type) {
		case map[string]any, []any:
		default:
			if a == b {
				return nil
			}
		}
	}
	return []Op{{Op: "replace", Path: path, Value: b}}
}

func diffObjects(a, b map[string]any, path string) []Op {
	var ops []Op

	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			ops = append(ops, Op{Op: "remove", Path: pointer(path, k)})
		}
	}

	for _, k := range sortedKeys(b) {
		child := pointer(path, k)
		if av, ok := a[k]; ok {
			ops = append(ops, Diff(av, b[k], child)...)
		} else {
			ops = append(ops, Op{Op: "add", Path: child, Value: b[k]})
		}
	}

	return ops
}

func diffArrays(a, b []any, path string) []Op {
	var ops []Op

	common := min(len(a), len(b))
	for i := 0; i < common; i++ {
		ops = append(ops, Diff(a[i], b[i], pointer(path, strconv.Itoa(i)))...)
	}

	// Trailing removals go last-first so earlier indexes stay valid.
	for i := len(a) - 1; i >= common; i-- {
		ops = append(ops, Op{Op: "remove", Path: pointer(path, strconv.Itoa(i))})
	}
	for i := common; i < len(b); i++ {
		ops = append(ops, Op{Op: "add", Path: pointer(path, strconv.Itoa(i)), Value: b[i]})
	}

	return ops
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// pointer appends token to path, escaped per RFC 6901.
func pointer(path, token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return path + "/" + token
}
