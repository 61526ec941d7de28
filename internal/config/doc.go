// Package config handles loading and validation of autopass configuration.
//
// Configuration is read from ~/.config/autopass/config.toml. Every string
// value supports environment variable interpolation ($VAR or ${VAR}, $$ for a
// literal dollar), applied before built-in defaults are deep-merged underneath
// the user's values. User-supplied values always win.
//
// # Key Settings
//
//   - store_root: password store root (default: "~/.password-store")
//   - cache_file: encrypted metadata cache path (default: XDG cache dir)
//   - recipient: gpg key id the cache is encrypted for (required for sync)
//   - backend: automation backend, "auto", "xdotool" or "wtype"
//   - sync_workers: bounded parallelism for decrypting drifted entries
//
// # Reserved Attribute Keys
//
// The [keys] section renames the attribute keys autopass treats specially
// inside entry metadata:
//
//	[keys]
//	username = "login"     # default "user"
//	password = "secret"    # default "pass"
//
// # Autotype Defaults
//
// Top-level autotype / autotype_N keys override the built-in action sequences
// for the matching slot, either as a whitespace-separated string or an array
// of tokens:
//
//	autotype = "user :tab pass :enter"
//	autotype_2 = ["user", ":tab", ":otp"]
//
// Entry-level attributes still take precedence over these defaults.
package config
