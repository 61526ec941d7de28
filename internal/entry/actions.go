package entry

import (
	"strings"

	"github.com/eltomello/autopass/internal/config"
)

// ActionKind classifies one resolved automation step.
type ActionKind int

const (
	KindText  ActionKind = iota // type a literal value
	KindKey                     // press a named key (tab, enter, ...)
	KindOTP                     // compute and type a one-time code
	KindDelay                   // brief pause between steps
)

// Action is one concrete automation step produced by resolving a slot.
type Action struct {
	Kind ActionKind
	Text string // literal value for KindText, key name for KindKey
}

// sentinel marks control tokens; everything else is an attribute lookup.
const sentinel = ":"

// Tokens resolves the raw token sequence for an autotype slot. Precedence:
// the entry's own autotype attribute for that slot, then the configured
// default, then the built-in sequence. A present-but-empty override counts
// as resolved and yields an empty sequence.
func (e *Entry) Tokens(slot int, cfg *config.Config) []string {
	if tokens, ok := e.Autotype[slot]; ok {
		return tokens
	}
	if tokens, ok := cfg.Autotype[slot]; ok {
		return tokens
	}
	return builtin(slot, cfg.Keys)
}

// Actions maps the resolved token sequence for a slot onto concrete steps.
// Control tokens (":" prefix) become key presses, with :otp and :delay
// handled specially; attribute tokens substitute the entry's value and are
// dropped when the lookup misses. An empty result means the whole autotype
// request is a no-op, window focus included.
func (e *Entry) Actions(slot int, cfg *config.Config) []Action {
	tokens := e.Tokens(slot, cfg)
	actions := make([]Action, 0, len(tokens))
	for _, token := range tokens {
		if name, ok := strings.CutPrefix(token, sentinel); ok {
			switch name {
			case "otp":
				actions = append(actions, Action{Kind: KindOTP})
			case "delay":
				actions = append(actions, Action{Kind: KindDelay})
			case "":
				// a bare ":" presses nothing
			default:
				actions = append(actions, Action{Kind: KindKey, Text: name})
			}
			continue
		}
		if value, ok := e.Get(token, cfg.Keys); ok {
			actions = append(actions, Action{Kind: KindText, Text: value})
		}
	}
	return actions
}

// NeedsOTP reports whether the slot's resolved sequence computes a one-time
// code, so callers can resolve it before touching window focus.
func (e *Entry) NeedsOTP(slot int, cfg *config.Config) bool {
	for _, a := range e.Actions(slot, cfg) {
		if a.Kind == KindOTP {
			return true
		}
	}
	return false
}

// builtin is the fallback sequence per slot, phrased in the configured
// attribute key names.
func builtin(slot int, keys config.KeyMap) []string {
	switch slot {
	case 0:
		return []string{keys.Username, ":tab", keys.Password}
	case 1:
		return []string{keys.Password}
	case 2:
		return []string{keys.Username}
	case 3:
		return []string{":otp"}
	default:
		return nil
	}
}
