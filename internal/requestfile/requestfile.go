package requestfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"load-simulation/internal/model"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported request file format")

// Load reads the request document at path. The format follows the file
// extension: .json, .yaml or .yml.
func Load(path string) (*model.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read request file %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return Parse(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", ext)
	}
}

// Parse decodes a JSON request document. Scenarios stay undecoded.
func Parse(data []byte) (*model.Request, error) {
	var req model.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON request")
	}
	return &req, nil
}

// ParseYAML decodes a YAML request document by converting it to JSON first,
// so scenarios reach the codec in the same form either way. Hex scalars such
// as an unquoted payload keep their text instead of becoming integers.
func ParseYAML(data []byte) (*model.Request, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML request")
	}
	doc, err := nodeValue(&root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML request")
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert YAML request to JSON")
	}
	return Parse(converted)
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			s = append(s, v)
		}
		return s, nil
	default:
		if isHexLiteral(n) {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		return v, nil
	}
}

// isHexLiteral reports plain scalars written as 0x..., which YAML resolves to
// integers (or fails to, for 20-byte addresses) but which are byte strings here.
func isHexLiteral(n *yaml.Node) bool {
	if n.Style != 0 || (n.Tag != "!!int" && n.Tag != "!!str" && n.Tag != "!!float") {
		return false
	}
	v := n.Value
	return len(v) > 2 && v[0] == '0' && (v[1] == 'x' || v[1] == 'X')
}
