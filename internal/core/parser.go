package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SkippedLine records a line the parser could not interpret. Skipped lines
// never abort parsing; they are surfaced so callers can report them.
type SkippedLine struct {
	// Line is the 1-based line number in the originating file.
	Line int
	// File is the path the line came from ("" for the top-level content).
	File string
	// Text is the offending line, trimmed.
	Text string
	// Reason describes why the line was skipped.
	Reason string
}

// ParseResult is the outcome of parsing a config: the bindings found, the
// variables collected, and every line that could not be interpreted.
type ParseResult struct {
	Bindings  []Keybinding
	Variables map[string]string
	Skipped   []SkippedLine
}

// SkippedCount returns the number of lines the parser could not interpret.
func (r ParseResult) SkippedCount() int {
	return len(r.Skipped)
}

// bindKeywordsByLength holds the bind keywords longest-first so that
// "bindel" is tried before "binde" and "bindl". Matching shortest-first
// would leave an unconsumed suffix and fail the longer forms.
var bindKeywordsByLength = func() []struct {
	keyword string
	typ     BindType
} {
	out := []struct {
		keyword string
		typ     BindType
	}{}
	for t, kw := range bindKeywords {
		out = append(out, struct {
			keyword string
			typ     BindType
		}{kw, t})
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].keyword) != len(out[j].keyword) {
			return len(out[i].keyword) > len(out[j].keyword)
		}
		return out[i].keyword < out[j].keyword
	})
	return out
}()

// Parse parses config content into keybindings.
//
// The walk is a single ordered pass: variable definitions ($name = value)
// take effect for the lines after them (Hyprland's declarative convention),
// and each candidate bind line has known variables substituted textually
// before parsing. Substitution is a single pass; values are not re-expanded.
//
// Malformed lines are recorded in the result and skipped, never fatal.
// `source = path` directives inline the named file (resolved against
// basePath, one level deep); sourcing the same path twice is a no-op.
func Parse(content string, basePath string) ParseResult {
	p := &parser{
		variables: make(map[string]string),
		sourced:   make(map[string]bool),
	}
	p.walk(content, "", basePath, 0)
	return ParseResult{
		Bindings:  p.bindings,
		Variables: p.variables,
		Skipped:   p.skipped,
	}
}

// ParseFile reads and parses a config file from disk.
func ParseFile(path string) (ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	p := &parser{
		variables: make(map[string]string),
		sourced:   make(map[string]bool),
	}
	if abs, err := filepath.Abs(path); err == nil {
		p.sourced[abs] = true
	}
	p.walk(string(data), path, filepath.Dir(path), 0)
	return ParseResult{
		Bindings:  p.bindings,
		Variables: p.variables,
		Skipped:   p.skipped,
	}, nil
}

type parser struct {
	bindings  []Keybinding
	variables map[string]string
	skipped   []SkippedLine
	sourced   map[string]bool
}

const maxSourceDepth = 1

func (p *parser) walk(content, file, basePath string, depth int) {
	for i, raw := range strings.Split(content, "\n") {
		lineNum := i + 1
		line := strings.TrimSpace(raw)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Variable definition: $name = value
		if strings.HasPrefix(line, "$") {
			if name, value, ok := parseVariable(line); ok {
				p.variables[name] = value
				continue
			}
			p.skip(lineNum, file, line, "malformed variable definition")
			continue
		}

		// Include directive: source = path
		if rest, ok := directiveValue(line, "source"); ok {
			p.source(rest, file, basePath, lineNum, depth)
			continue
		}

		substituted := substituteVariables(line, p.variables)

		binding, err := parseBindLine(substituted, lineNum)
		if err != nil {
			p.skip(lineNum, file, line, err.Error())
			continue
		}
		p.bindings = append(p.bindings, binding)
	}
}

func (p *parser) skip(line int, file, text, reason string) {
	p.skipped = append(p.skipped, SkippedLine{
		Line:   line,
		File:   file,
		Text:   text,
		Reason: reason,
	})
}

// source inlines another config file. Only one level of sourcing is
// followed; a repeat of an already-seen path is silently ignored so a file
// sourcing itself cannot loop.
func (p *parser) source(pathArg, file, basePath string, lineNum, depth int) {
	if depth >= maxSourceDepth {
		p.skip(lineNum, file, "source = "+pathArg, "nested source ignored")
		return
	}
	target := strings.TrimSpace(pathArg)
	if target == "" {
		p.skip(lineNum, file, "source =", "empty source path")
		return
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(basePath, target)
	}
	abs := target
	if a, err := filepath.Abs(target); err == nil {
		abs = a
	}
	if p.sourced[abs] {
		return
	}
	p.sourced[abs] = true

	data, err := os.ReadFile(target)
	if err != nil {
		p.skip(lineNum, file, "source = "+pathArg, fmt.Sprintf("unreadable source file: %v", err))
		return
	}
	p.walk(string(data), target, filepath.Dir(target), depth+1)
}

// parseVariable parses "$name = value" and returns (name, value, true).
func parseVariable(line string) (string, string, bool) {
	eq := strings.Index(line, "=")
	if eq < 0 {
		return "", "", false
	}
	name := strings.TrimSpace(line[1:eq])
	value := strings.TrimSpace(line[eq+1:])
	if name == "" {
		return "", "", false
	}
	return name, value, true
}

// directiveValue matches "keyword = value" lines and returns the value.
func directiveValue(line, keyword string) (string, bool) {
	if !strings.HasPrefix(line, keyword) {
		return "", false
	}
	rest := line[len(keyword):]
	trimmed := strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(trimmed, "=") {
		return "", false
	}
	return strings.TrimSpace(trimmed[1:]), true
}

// substituteVariables replaces $name references with their collected
// values. Names are applied longest-first so that $mainMod is never
// clobbered by a shorter variable named $main.
func substituteVariables(line string, variables map[string]string) string {
	if len(variables) == 0 || !strings.Contains(line, "$") {
		return line
	}
	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		line = strings.ReplaceAll(line, "$"+name, variables[name])
	}
	return line
}

// parseBindLine parses one substituted line of the form
//
//	<bind-keyword> = <modifiers>, <key>, <dispatcher>[, <args>]
//
// Bind keywords are matched longest-first.
func parseBindLine(line string, lineNum int) (Keybinding, error) {
	bindType, rest, ok := matchBindKeyword(line)
	if !ok {
		return Keybinding{}, fmt.Errorf("not a bind line")
	}

	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, "=") {
		return Keybinding{}, fmt.Errorf("expected '=' after bind keyword")
	}
	rest = rest[1:]

	// Modifiers, key, and dispatcher cannot contain commas; everything
	// after the third comma belongs to the argument string.
	parts := strings.SplitN(rest, ",", 4)
	if len(parts) < 3 {
		return Keybinding{}, fmt.Errorf("expected at least modifiers, key, and dispatcher")
	}

	modifiers := parseModifierList(parts[0])

	key := strings.TrimSpace(parts[1])
	if key == "" {
		return Keybinding{}, fmt.Errorf("missing key name")
	}

	dispatcher := strings.TrimSpace(parts[2])
	if dispatcher == "" || !isDispatcherToken(dispatcher) {
		return Keybinding{}, fmt.Errorf("malformed dispatcher %q", dispatcher)
	}

	args := ""
	if len(parts) == 4 {
		args = strings.TrimSpace(parts[3])
	}

	return Keybinding{
		Combo:      NewKeyCombo(modifiers, key),
		Type:       bindType,
		Dispatcher: dispatcher,
		Args:       args,
		Line:       lineNum,
	}, nil
}

// matchBindKeyword tries each bind keyword longest-first and returns the
// matched type plus the unconsumed remainder. The keyword must be followed
// by whitespace or '=' so that e.g. "binding" does not match "bind".
func matchBindKeyword(line string) (BindType, string, bool) {
	for _, entry := range bindKeywordsByLength {
		if !strings.HasPrefix(line, entry.keyword) {
			continue
		}
		rest := line[len(entry.keyword):]
		if rest == "" {
			return 0, "", false
		}
		switch rest[0] {
		case ' ', '\t', '=':
			return entry.typ, rest, true
		}
	}
	return 0, "", false
}

// IsBindLine reports whether a raw config line is a binding statement of
// any bind flavor, well-formed or not. Used when rewriting a config to
// decide which lines the binding section replaces.
func IsBindLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return false
	}
	_, rest, ok := matchBindKeyword(trimmed)
	if !ok {
		return false
	}
	return strings.HasPrefix(strings.TrimLeft(rest, " \t"), "=")
}

// parseModifierList splits a modifier field ("SUPER_SHIFT", "SUPER SHIFT",
// or empty) into modifiers. Unknown modifier words are ignored, matching
// Hyprland's lenient treatment of modifier fields.
func parseModifierList(field string) []Modifier {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	var parts []string
	if strings.Contains(field, "_") {
		parts = strings.Split(field, "_")
	} else {
		parts = strings.Fields(field)
	}
	var modifiers []Modifier
	for _, part := range parts {
		if m, ok := ParseModifier(part); ok {
			modifiers = append(modifiers, m)
		}
	}
	return modifiers
}

// isDispatcherToken reports whether s is a plausible dispatcher name:
// letters, digits, and underscores only.
func isDispatcherToken(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}
