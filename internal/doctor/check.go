package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/eltomello/autopass/internal/autotype"
	"github.com/eltomello/autopass/internal/cmd"
	"github.com/eltomello/autopass/internal/config"
	"github.com/eltomello/autopass/internal/gpg"
	"github.com/eltomello/autopass/internal/store"
)

func checkGPG() Check {
	c := Check{Name: "gpg"}
	if !gpg.Available() {
		c.Status = Fail
		c.Detail = "gpg not found on PATH"
		c.Hint = "install gnupg"
		return c
	}
	c.Detail = "installed"
	return c
}

func checkRecipient(ctx context.Context, cfg *config.Config) Check {
	c := Check{Name: "recipient key"}
	if cfg.Recipient == "" {
		c.Status = Fail
		c.Detail = "no recipient configured"
		c.Hint = "set recipient in the config file"
		return c
	}
	if !gpg.Available() {
		c.Status = Fail
		c.Detail = "cannot verify without gpg"
		return c
	}
	if err := gpg.CheckRecipient(ctx, cfg.Recipient); err != nil {
		c.Status = Fail
		c.Detail = fmt.Sprintf("no public key for %q", cfg.Recipient)
		c.Hint = "import or generate the key, or fix the recipient setting"
		return c
	}
	c.Detail = cfg.Recipient
	return c
}

func checkStore(ctx context.Context, cfg *config.Config) Check {
	c := Check{Name: "password store"}
	info, err := os.Stat(cfg.StoreRoot)
	if err != nil || !info.IsDir() {
		c.Status = Fail
		c.Detail = fmt.Sprintf("%s is not a directory", cfg.StoreRoot)
		c.Hint = "initialize the store with pass init, or point store_root at it"
		return c
	}

	files, err := store.New(cfg.StoreRoot).List(ctx)
	if err != nil {
		c.Status = Fail
		c.Detail = err.Error()
		return c
	}
	c.Detail = fmt.Sprintf("%d entries in %s", len(files), cfg.StoreRoot)
	return c
}

func checkCache(cfg *config.Config) Check {
	c := Check{Name: "cache"}
	if _, err := os.Stat(cfg.CacheFile); err != nil {
		c.Status = Warn
		c.Detail = "no cache file yet"
		c.Hint = "run autopass sync to build it"
		return c
	}
	c.Detail = cfg.CacheFile
	return c
}

func checkAutotype(cfg *config.Config) Check {
	c := Check{Name: "autotype backend"}
	backend, err := autotype.New(cfg.Backend)
	if err != nil {
		c.Status = Fail
		c.Detail = err.Error()
		c.Hint = "set backend to auto, xdotool or wtype"
		return c
	}
	if err := backend.Check(); err != nil {
		c.Status = Fail
		c.Detail = err.Error()
		return c
	}
	c.Detail = backend.Name()
	return c
}

func checkClipboard() Check {
	c := Check{Name: "clipboard"}
	for _, tool := range []string{"wl-copy", "xclip", "xsel"} {
		if cmd.LookPath(tool) {
			c.Detail = tool
			return c
		}
	}
	c.Status = Warn
	c.Detail = "no clipboard tool found"
	c.Hint = "install wl-clipboard, xclip or xsel to enable copy actions"
	return c
}

func checkNotify(cfg *config.Config) Check {
	c := Check{Name: "notifications"}
	if !cfg.Notify.Enabled {
		c.Detail = "disabled"
		return c
	}
	if !cmd.LookPath("notify-send") {
		c.Status = Warn
		c.Detail = "notify-send not found"
		c.Hint = "install libnotify or disable notifications"
		return c
	}
	c.Detail = "notify-send"
	return c
}
