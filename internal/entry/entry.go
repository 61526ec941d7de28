// Package entry holds the credential entry model: parsing revealed store
// payloads into typed records, resolving autotype slots into action
// sequences, TAN selection and window-title ranking.
package entry

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eltomello/autopass/internal/config"
)

// Attribute is one user-defined metadata key/value pair, in document order.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Entry is one credential record. It is immutable once constructed; a changed
// store file produces a replacement Entry, never a mutation.
//
// An Entry is either usable (Password carries the secret line) or
// error-flagged (Invalid with a Reason), never silently dropped from the
// index.
type Entry struct {
	Name string `json:"name"` // leaf display name
	Path string `json:"path"` // relative path without the store suffix, unique

	Username  string           `json:"username,omitempty"`
	Password  string           `json:"password,omitempty"`
	OTPSecret string           `json:"otp_secret,omitempty"`
	TANs      string           `json:"tans,omitempty"`   // newline-separated single-use codes
	Window    string           `json:"window,omitempty"` // regex overriding Name for matching
	Autotype  map[int][]string `json:"autotype,omitempty"`

	Attrs []Attribute `json:"attrs,omitempty"`

	Invalid bool   `json:"invalid,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Parse builds an Entry from a revealed plaintext payload. The first line is
// the raw secret; the remainder is a YAML mapping of attributes. Reserved
// keys (per the KeyMap) land in typed fields, everything else is kept in
// Attrs in document order. Parse and type failures degrade to an
// error-flagged Entry so the caller can surface it instead of dropping it.
func Parse(relPath, plaintext string, keys config.KeyMap) *Entry {
	e := &Entry{
		Name: path.Base(relPath),
		Path: relPath,
	}

	secret, meta, _ := strings.Cut(plaintext, "\n")

	if err := e.parseMeta(meta, keys); err != nil {
		return Errored(relPath, err.Error())
	}

	// The secret line always wins over a password attribute in the metadata.
	e.Password = secret

	return e
}

// Errored builds an error-flagged Entry that keeps its identity so it can
// still be listed and highlighted.
func Errored(relPath, reason string) *Entry {
	return &Entry{
		Name:    path.Base(relPath),
		Path:    relPath,
		Invalid: true,
		Reason:  reason,
	}
}

func (e *Entry) parseMeta(meta string, keys config.KeyMap) error {
	if strings.TrimSpace(meta) == "" {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(meta), &doc); err != nil {
		return err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return fmt.Errorf("metadata is not a key/value mapping")
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		value := mapping.Content[i+1]

		if slot, ok := keys.SlotFor(key); ok {
			tokens, err := tokenNodes(value)
			if err != nil {
				return fmt.Errorf("attribute %q: %w", key, err)
			}
			if e.Autotype == nil {
				e.Autotype = make(map[int][]string)
			}
			e.Autotype[slot] = tokens
			continue
		}

		switch key {
		case keys.Username:
			s, err := scalar(value, key)
			if err != nil {
				return err
			}
			e.Username = s
		case keys.Password:
			s, err := scalar(value, key)
			if err != nil {
				return err
			}
			e.Password = s
		case keys.OTP:
			s, err := scalar(value, key)
			if err != nil {
				return err
			}
			e.OTPSecret = s
		case keys.Window:
			s, err := scalar(value, key)
			if err != nil {
				return err
			}
			e.Window = s
		case keys.TAN:
			s, err := tanValue(value, key)
			if err != nil {
				return err
			}
			e.TANs = s
		default:
			e.setAttr(key, attrString(value))
		}
	}

	return nil
}

// setAttr records a residual attribute, overwriting in place when the same
// key appears twice so document order follows the first occurrence.
func (e *Entry) setAttr(key, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attribute{Key: key, Value: value})
}

// Get looks up an attribute value by key, covering both the reserved fields
// under their configured names and the residual attributes. Empty values
// count as absent.
func (e *Entry) Get(key string, keys config.KeyMap) (string, bool) {
	var v string
	switch key {
	case keys.Username:
		v = e.Username
	case keys.Password:
		v = e.Password
	case keys.OTP:
		v = e.OTPSecret
	case keys.TAN:
		v = e.TANs
	case keys.Window:
		v = e.Window
	default:
		for _, a := range e.Attrs {
			if a.Key == key {
				v = a.Value
				break
			}
		}
	}
	if v == "" {
		return "", false
	}
	return v, true
}

// scalar requires a plain scalar value for a reserved attribute.
func scalar(n *yaml.Node, key string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("attribute %q must be a scalar", key)
	}
	return n.Value, nil
}

// tanValue accepts either a scalar (newline-separated codes, usually a block
// literal) or a sequence of scalar codes.
func tanValue(n *yaml.Node, key string) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.SequenceNode:
		codes := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return "", fmt.Errorf("attribute %q must hold scalar codes", key)
			}
			codes = append(codes, item.Value)
		}
		return strings.Join(codes, "\n"), nil
	default:
		return "", fmt.Errorf("attribute %q must be a scalar or a sequence", key)
	}
}

// tokenNodes turns an autotype attribute value into a token sequence: a
// scalar splits on whitespace, a sequence is used as-is.
func tokenNodes(n *yaml.Node) ([]string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return strings.Fields(n.Value), nil
	case yaml.SequenceNode:
		tokens := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("sequence tokens must be scalars")
			}
			tokens = append(tokens, item.Value)
		}
		return tokens, nil
	default:
		return nil, fmt.Errorf("must be a string or a sequence of tokens")
	}
}

// attrString renders a residual attribute value. Scalars keep their raw text;
// nested structures are stringified for display and copy purposes.
func attrString(n *yaml.Node) string {
	if n.Kind == yaml.ScalarNode {
		return n.Value
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return ""
	}
	return fmt.Sprint(v)
}
