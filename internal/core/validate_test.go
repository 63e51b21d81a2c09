package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateDispatcher(t *testing.T) {
	for _, name := range []string{"exec", "EXEC", "killactive", "workspace", "submap", "global"} {
		if err := ValidateDispatcher(name); err != nil {
			t.Fatalf("ValidateDispatcher(%q): %v", name, err)
		}
	}

	for _, name := range []string{"", "spawn", "exec2", "rm", "custom"} {
		err := ValidateDispatcher(name)
		if !errors.Is(err, ErrInvalidDispatcher) {
			t.Fatalf("ValidateDispatcher(%q) = %v, want ErrInvalidDispatcher", name, err)
		}
	}
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{"K", "k", "F1", "XF86AudioRaiseVolume", "mouse:272", "semicolon", "switch:lid", "minus-key", "snake_case"} {
		if err := ValidateKey(key); err != nil {
			t.Fatalf("ValidateKey(%q): %v", key, err)
		}
	}

	for _, key := range []string{"", "a b", "k;", "k|", "k$x", "key!"} {
		err := ValidateKey(key)
		if !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("ValidateKey(%q) = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestValidateKey_SpecialKeysAnyCase(t *testing.T) {
	for _, key := range []string{"Return", "RETURN", "return", "Escape", "BACKSPACE", "Prior"} {
		if err := ValidateKey(key); err != nil {
			t.Fatalf("ValidateKey(%q): %v", key, err)
		}
	}
}

func TestCheckShellMetacharacters_EachCharacterRejected(t *testing.T) {
	for _, c := range []string{";", "|", "&", "$", "`", "(", ")", "{", "}", "[", "]", "<", ">", "\\", "\"", "'", "\n", "\r"} {
		input := "firefox" + c + "rest"
		err := CheckShellMetacharacters(input)
		if !errors.Is(err, ErrShellMetacharacters) {
			t.Fatalf("CheckShellMetacharacters(%q) = %v, want ErrShellMetacharacters", input, err)
		}
	}
}

func TestCheckShellMetacharacters_CleanInputAccepted(t *testing.T) {
	for _, input := range []string{"", "firefox", "grim -g slurp.png", "volume up 5%", "path/to/script.sh --flag=value"} {
		if err := CheckShellMetacharacters(input); err != nil {
			t.Fatalf("CheckShellMetacharacters(%q): %v", input, err)
		}
	}
}

func TestValidateKeybinding_ArgLengthBoundary(t *testing.T) {
	base := Keybinding{
		Combo:      NewKeyCombo([]Modifier{ModSuper}, "K"),
		Type:       Bind,
		Dispatcher: "exec",
	}

	atLimit := base
	atLimit.Args = strings.Repeat("a", MaxArgLength)
	if err := ValidateKeybinding(atLimit); err != nil {
		t.Fatalf("args at %d chars should pass: %v", MaxArgLength, err)
	}

	overLimit := base
	overLimit.Args = strings.Repeat("a", MaxArgLength+1)
	err := ValidateKeybinding(overLimit)
	if !errors.Is(err, ErrArgumentTooLong) {
		t.Fatalf("args at %d chars = %v, want ErrArgumentTooLong", MaxArgLength+1, err)
	}
}

func TestValidateKeybinding_InjectionAttemptRejected(t *testing.T) {
	b := Keybinding{
		Combo:      NewKeyCombo([]Modifier{ModSuper}, "K"),
		Type:       Bind,
		Dispatcher: "exec",
		Args:       "firefox; rm -rf ~",
	}
	err := ValidateKeybinding(b)
	if !errors.Is(err, ErrShellMetacharacters) {
		t.Fatalf("injection attempt = %v, want ErrShellMetacharacters", err)
	}
}

func TestValidateKeybinding_CleanBindingPasses(t *testing.T) {
	b := Keybinding{
		Combo:      NewKeyCombo([]Modifier{ModSuper}, "K"),
		Type:       Bind,
		Dispatcher: "exec",
		Args:       "firefox",
	}
	if err := ValidateKeybinding(b); err != nil {
		t.Fatalf("clean binding rejected: %v", err)
	}
}

func TestValidateKeybinding_UnknownDispatcherRejectedFirst(t *testing.T) {
	b := Keybinding{
		Combo:      NewKeyCombo([]Modifier{ModSuper}, "K"),
		Type:       Bind,
		Dispatcher: "spawn",
		Args:       "firefox; echo",
	}
	err := ValidateKeybinding(b)
	if !errors.Is(err, ErrInvalidDispatcher) {
		t.Fatalf("unknown dispatcher = %v, want ErrInvalidDispatcher", err)
	}
}
