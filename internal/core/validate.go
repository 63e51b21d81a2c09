package core

import (
	"errors"
	"fmt"
	"strings"
)

// Layer 1 validation errors. Callers classify failures with errors.Is.
var (
	// ErrInvalidDispatcher means the dispatcher is not in the allow-list.
	ErrInvalidDispatcher = errors.New("dispatcher not in allow-list")
	// ErrInvalidKey means the key name fails the allowed character class.
	ErrInvalidKey = errors.New("invalid key name")
	// ErrShellMetacharacters means the argument contains a character that
	// could break out of the command context.
	ErrShellMetacharacters = errors.New("shell metacharacters in argument")
	// ErrArgumentTooLong means the argument exceeds MaxArgLength.
	ErrArgumentTooLong = errors.New("argument too long")
)

// MaxArgLength is the policy ceiling on dispatcher argument length.
const MaxArgLength = 1000

// shellMetacharacters are hard-rejected in arguments. A single occurrence
// of any of them fails validation: these are the characters a shell uses to
// chain, substitute, group, redirect, or escape.
const shellMetacharacters = ";|&$`(){}[]<>\\\"'\n\r"

// allowedDispatchers is the dispatcher allow-list, curated against the
// Hyprland dispatcher set (wiki.hyprland.org/Configuring/Dispatchers).
// Deny-by-default: an unknown dispatcher is rejected even if it looks
// harmless, because blacklists are trivially bypassed while an allow-list
// only needs maintenance when Hyprland grows a legitimate new dispatcher.
var allowedDispatchers = map[string]struct{}{
	"exec":                          {},
	"execr":                         {},
	"killactive":                    {},
	"closewindow":                   {},
	"workspace":                     {},
	"movetoworkspace":               {},
	"togglefloating":                {},
	"fullscreen":                    {},
	"pseudo":                        {},
	"pin":                           {},
	"movefocus":                     {},
	"movewindow":                    {},
	"swapwindow":                    {},
	"centerwindow":                  {},
	"resizeactive":                  {},
	"moveactive":                    {},
	"cyclenext":                     {},
	"focuswindow":                   {},
	"focusmonitor":                  {},
	"splitratio":                    {},
	"toggleopaque":                  {},
	"movecursortocorner":            {},
	"workspaceopt":                  {},
	"exit":                          {},
	"forcerendererreload":           {},
	"movecurrentworkspacetomonitor": {},
	"focusurgentor":                 {},
	"togglespecialworkspace":        {},
	"togglegroup":                   {},
	"changegroupactive":             {},
	"moveintogroup":                 {},
	"moveoutofgroup":                {},
	"lockgroups":                    {},
	"lockactivegroup":               {},
	"movegroupwindow":               {},
	"pass":                          {},
	"sendshortcut":                  {},
	"layoutmsg":                     {},
	"dpms":                          {},
	"submap":                        {},
	"global":                        {},
}

// specialKeys are named keys accepted in any case. Keys arrive upper-cased
// from KeyCombo normalization, so lookups go through strings.ToUpper.
var specialKeys = map[string]struct{}{
	"RETURN": {}, "ESCAPE": {}, "SPACE": {}, "TAB": {},
	"BACKSPACE": {}, "DELETE": {}, "INSERT": {}, "HOME": {}, "END": {},
	"PRIOR": {}, "NEXT": {}, "LEFT": {}, "RIGHT": {}, "UP": {}, "DOWN": {},
}

// ValidateDispatcher checks the dispatcher name, case-insensitively,
// against the allow-list.
func ValidateDispatcher(name string) error {
	if _, ok := allowedDispatchers[strings.ToLower(name)]; ok {
		return nil
	}
	return fmt.Errorf("dispatcher %q: %w", name, ErrInvalidDispatcher)
}

// CheckShellMetacharacters rejects input containing any blocked shell
// metacharacter.
func CheckShellMetacharacters(input string) error {
	if i := strings.IndexAny(input, shellMetacharacters); i >= 0 {
		return fmt.Errorf("argument contains %q: %w", input[i], ErrShellMetacharacters)
	}
	return nil
}

// ValidateKey checks a key name against the allowed character class:
// alphanumerics plus underscore, colon, and hyphen (mouse buttons use
// forms like "mouse:272"), or one of the named special keys.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty key name: %w", ErrInvalidKey)
	}
	if _, ok := specialKeys[strings.ToUpper(key)]; ok {
		return nil
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == ':' || r == '-':
		default:
			return fmt.Errorf("key %q: %w", key, ErrInvalidKey)
		}
	}
	return nil
}

// ValidateKeybinding runs every Layer 1 check against a binding:
// dispatcher allow-list, key character class, argument length ceiling, and
// shell metacharacter rejection. The first failing check is returned.
func ValidateKeybinding(b Keybinding) error {
	if err := ValidateDispatcher(b.Dispatcher); err != nil {
		return err
	}
	if err := ValidateKey(b.Combo.Key()); err != nil {
		return err
	}
	if b.Args != "" {
		if len(b.Args) > MaxArgLength {
			return fmt.Errorf("argument is %d characters (max %d): %w",
				len(b.Args), MaxArgLength, ErrArgumentTooLong)
		}
		if err := CheckShellMetacharacters(b.Args); err != nil {
			return err
		}
	}
	return nil
}
