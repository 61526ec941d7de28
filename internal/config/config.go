package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrMissing is returned by Load when no config file exists yet. Callers are
// expected to scaffold one via Init and instruct the user to edit it.
var ErrMissing = errors.New("config file not found")

// KeyMap names the entry attributes autopass treats specially. Entries use
// these names in their metadata; renaming here renames them store-wide.
type KeyMap struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	OTP      string `toml:"otp"`
	TAN      string `toml:"tan"`
	Window   string `toml:"window"`
	Autotype string `toml:"autotype"`
}

// AutotypeSlot returns the attribute key holding the override for a slot:
// the base key for slot 0, "<base>_N" for alternates.
func (k KeyMap) AutotypeSlot(slot int) string {
	if slot == 0 {
		return k.Autotype
	}
	return k.Autotype + "_" + strconv.Itoa(slot)
}

// SlotFor is the inverse of AutotypeSlot: it maps an attribute key to the
// autotype slot it overrides, reporting false for unrelated keys.
func (k KeyMap) SlotFor(key string) (int, bool) {
	if key == k.Autotype {
		return 0, true
	}
	rest, ok := strings.CutPrefix(key, k.Autotype+"_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// ClipboardConfig holds clipboard-related configuration
type ClipboardConfig struct {
	ClearDelay time.Duration // how long a copied secret stays on the clipboard
}

// NotificationsConfig holds desktop notification configuration
type NotificationsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// Config holds the autopass configuration
type Config struct {
	StoreRoot   string
	CacheFile   string
	Recipient   string
	Backend     string // "auto", "xdotool", or "wtype"
	SyncWorkers int
	Keys        KeyMap
	Autotype    map[int][]string // config-level slot defaults, built-ins apply beneath
	Clipboard   ClipboardConfig
	Notify      NotificationsConfig
	Keybindings map[string]string // picker action -> key chord
}

// Default returns the built-in configuration, the layer user values are
// merged over.
func Default() Config {
	cfg, err := decode(defaults())
	if err != nil {
		// defaults() is static and must always decode
		panic("config: invalid built-in defaults: " + err.Error())
	}
	return cfg
}

// defaults is the built-in layer as a value tree, so it participates in the
// same deep-merge as user values.
func defaults() map[string]any {
	return map[string]any{
		"store_root":   "~/.password-store",
		"cache_file":   "",
		"recipient":    "",
		"backend":      "auto",
		"sync_workers": int64(8),
		"keys": map[string]any{
			"username": "user",
			"password": "pass",
			"otp":      "otp_secret",
			"tan":      "tan",
			"window":   "window",
			"autotype": "autotype",
		},
		"clipboard": map[string]any{
			"clear_delay_seconds": int64(45),
		},
		"notifications": map[string]any{
			"enabled":    true,
			"timeout_ms": int64(3000),
		},
		"keybindings": map[string]any{
			"autotype":      "enter",
			"autotype_1":    "alt+1",
			"autotype_2":    "alt+2",
			"autotype_3":    "alt+3",
			"copy_password": "ctrl+p",
			"copy_username": "ctrl+u",
			"copy_otp":      "ctrl+o",
			"tan":           "ctrl+t",
			"show":          "ctrl+s",
		},
	}
}

// rawConfig mirrors the merged value tree for TOML decoding. Autotype slot
// keys are dynamic and extracted separately.
type rawConfig struct {
	StoreRoot   string            `toml:"store_root"`
	CacheFile   string            `toml:"cache_file"`
	Recipient   string            `toml:"recipient"`
	Backend     string            `toml:"backend"`
	SyncWorkers int               `toml:"sync_workers"`
	Keys        KeyMap            `toml:"keys"`
	Clipboard   rawClipboard      `toml:"clipboard"`
	Notify      rawNotifications  `toml:"notifications"`
	Keybindings map[string]string `toml:"keybindings"`
}

type rawClipboard struct {
	ClearDelaySeconds int `toml:"clear_delay_seconds"`
}

type rawNotifications struct {
	Enabled   bool `toml:"enabled"`
	TimeoutMS int  `toml:"timeout_ms"`
}

// DefaultPath returns the path of the config file, honoring XDG conventions.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autopass", "config.toml"), nil
}

// Load reads the config file at path (DefaultPath if empty), interpolates
// environment variables into string values, merges defaults underneath and
// decodes the result. Returns ErrMissing when no file exists.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrMissing, path)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse runs the full pipeline on raw TOML bytes: decode to a value tree,
// interpolate env vars, merge defaults underneath, decode to a Config.
func Parse(data []byte) (Config, error) {
	var user map[string]any
	if err := toml.Unmarshal(data, &user); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	interpolated, ok := Interpolate(user).(map[string]any)
	if !ok {
		interpolated = map[string]any{}
	}
	merged, ok := Merge(defaults(), interpolated).(map[string]any)
	if !ok {
		return Config{}, errors.New("parse config: document is not a table")
	}

	return decode(merged)
}

func decode(merged map[string]any) (Config, error) {
	autotype, err := parseAutotypeDefaults(merged)
	if err != nil {
		return Config{}, err
	}

	// Round-trip the merged tree through the TOML codec to fill the typed
	// struct; dynamic autotype keys are already extracted and get ignored.
	data, err := toml.Marshal(merged)
	if err != nil {
		return Config{}, fmt.Errorf("encode merged config: %w", err)
	}
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("decode merged config: %w", err)
	}

	cfg := Config{
		StoreRoot:   raw.StoreRoot,
		CacheFile:   raw.CacheFile,
		Recipient:   raw.Recipient,
		Backend:     raw.Backend,
		SyncWorkers: raw.SyncWorkers,
		Keys:        raw.Keys,
		Autotype:    autotype,
		Clipboard: ClipboardConfig{
			ClearDelay: time.Duration(raw.Clipboard.ClearDelaySeconds) * time.Second,
		},
		Notify: NotificationsConfig{
			Enabled: raw.Notify.Enabled,
			Timeout: time.Duration(raw.Notify.TimeoutMS) * time.Millisecond,
		},
		Keybindings: raw.Keybindings,
	}

	switch cfg.Backend {
	case "auto", "xdotool", "wtype":
	default:
		return Config{}, fmt.Errorf("invalid backend %q: must be \"auto\", \"xdotool\" or \"wtype\"", cfg.Backend)
	}
	if cfg.SyncWorkers < 1 {
		return Config{}, fmt.Errorf("sync_workers must be at least 1, got %d", cfg.SyncWorkers)
	}
	if cfg.Clipboard.ClearDelay < 0 {
		return Config{}, fmt.Errorf("clipboard.clear_delay_seconds must not be negative")
	}

	if cfg.StoreRoot != "" {
		expanded, err := expandPath(cfg.StoreRoot)
		if err != nil {
			return Config{}, fmt.Errorf("expand store_root: %w", err)
		}
		cfg.StoreRoot = expanded
	}
	if cfg.CacheFile == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve cache dir: %w", err)
		}
		cfg.CacheFile = filepath.Join(cacheDir, "autopass", "cache.gpg")
	} else {
		expanded, err := expandPath(cfg.CacheFile)
		if err != nil {
			return Config{}, fmt.Errorf("expand cache_file: %w", err)
		}
		cfg.CacheFile = expanded
	}

	return cfg, nil
}

// Validate checks the settings cache work depends on. Commands that touch the
// store call this up front; init and doctor run without it.
func (c *Config) Validate() error {
	if c.Recipient == "" {
		return errors.New("recipient is not set: add your gpg key id to the config file")
	}
	info, err := os.Stat(c.StoreRoot)
	if err != nil {
		return fmt.Errorf("store root %s: %w", c.StoreRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store root %s is not a directory", c.StoreRoot)
	}
	return nil
}

// parseAutotypeDefaults extracts top-level autotype / autotype_N keys from the
// merged tree into slot-indexed token sequences.
func parseAutotypeDefaults(raw map[string]any) (map[int][]string, error) {
	out := make(map[int][]string)
	for key, value := range raw {
		slot, ok := autotypeSlot(key)
		if !ok {
			continue
		}
		tokens, err := tokenize(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out[slot] = tokens
	}
	return out, nil
}

// autotypeSlot maps "autotype" to slot 0 and "autotype_N" to slot N. Config
// defaults always use the fixed base name, unlike entry attributes.
func autotypeSlot(key string) (int, bool) {
	return KeyMap{Autotype: "autotype"}.SlotFor(key)
}

// tokenize turns a TOML value into an action token sequence: strings split on
// whitespace, arrays are used as-is.
func tokenize(v any) ([]string, error) {
	switch t := v.(type) {
	case string:
		return strings.Fields(t), nil
	case []any:
		tokens := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("sequence values must be strings, got %T", item)
			}
			tokens = append(tokens, s)
		}
		return tokens, nil
	default:
		return nil, fmt.Errorf("value must be a string or a sequence of strings, got %T", v)
	}
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

const defaultConfig = `# autopass configuration
#
# Every string value supports environment variable interpolation:
#   $VAR or ${VAR} expands at load time, $$ is a literal dollar sign.

# Root of the password store (one .gpg file per entry).
# store_root = "~/.password-store"
# store_root = "${PASSWORD_STORE_DIR}"

# Where the encrypted metadata cache lives.
# Default: $XDG_CACHE_HOME/autopass/cache.gpg
# cache_file = "~/.cache/autopass/cache.gpg"

# gpg key id or email the cache is encrypted for. Required.
recipient = ""

# Automation backend for window focus and typing.
# "auto" picks xdotool on X11 and wtype on Wayland.
# backend = "auto"

# How many entries to decrypt in parallel during sync.
# sync_workers = 8

# Default autotype action sequences per slot. Tokens starting with ":" are
# control actions (:tab, :enter, :otp, :delay); everything else names an
# entry attribute to type. Entry-level autotype attributes take precedence.
#
# autotype = "user :tab pass"
# autotype_1 = "pass"
# autotype_2 = "user"
# autotype_3 = ":otp"
# autotype_5 = ["user", ":tab", "pass", ":tab", ":otp", ":enter"]

# Rename the attribute keys autopass treats specially.
#
# [keys]
# username = "user"
# password = "pass"
# otp = "otp_secret"
# tan = "tan"
# window = "window"
# autotype = "autotype"

# Clipboard handling. Copied secrets are cleared after this many seconds.
#
# [clipboard]
# clear_delay_seconds = 45

# Desktop notifications (notify-send when available, stderr otherwise).
#
# [notifications]
# enabled = true
# timeout_ms = 3000

# Picker keybindings.
#
# [keybindings]
# autotype = "enter"
# autotype_1 = "alt+1"
# autotype_2 = "alt+2"
# autotype_3 = "alt+3"
# copy_password = "ctrl+p"
# copy_username = "ctrl+u"
# copy_otp = "ctrl+o"
# tan = "ctrl+t"
# show = "ctrl+s"
`

// Init creates a default config file at DefaultPath.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := DefaultPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", err
	}

	return path, nil
}
