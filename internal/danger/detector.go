package danger

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Level is the risk tier of a command. Levels are ordered so callers can
// compare and keep the highest seen.
type Level int

const (
	// Safe means no known concern.
	Safe Level = iota
	// Suspicious means the command is often abused but has legitimate
	// uses.
	Suspicious
	// Dangerous means serious damage or escalation potential.
	Dangerous
	// Critical means immediate system destruction.
	Critical
)

// String returns the lower-case tier name.
func (l Level) String() string {
	switch l {
	case Safe:
		return "safe"
	case Suspicious:
		return "suspicious"
	case Dangerous:
		return "dangerous"
	case Critical:
		return "critical"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel converts a tier name into a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "safe":
		return Safe, nil
	case "suspicious":
		return Suspicious, nil
	case "dangerous":
		return Dangerous, nil
	case "critical":
		return Critical, nil
	default:
		return Safe, fmt.Errorf("unknown risk level %q", name)
	}
}

// Assessment is the verdict for one command: a single level, a
// human-readable reason, a mitigation hint, and the pattern or token that
// matched, when one did.
type Assessment struct {
	Level          Level
	Reason         string
	Recommendation string
	MatchedPattern string
}

// Detector assesses command strings. It is stateless per assessment and
// safe for concurrent use once built.
type Detector struct {
	critical   []criticalPattern
	dangerous  map[string]struct{}
	suspicious map[string]struct{}
	safe       map[string]struct{}
}

// NewDetector builds a detector with all pattern tables loaded.
func NewDetector() *Detector {
	return &Detector{
		critical:   buildCriticalPatterns(),
		dangerous:  buildDangerousCommands(),
		suspicious: buildSuspiciousCommands(),
		safe:       buildSafeCommands(),
	}
}

// Assess returns a single verdict for a command. Detection rounds run
// cheapest-first and the first match wins:
//
//  1. known-safe short-circuit on the command word
//  2. critical regex patterns (system destruction)
//  3. dangerous argument combinations (chmod 777, download|shell, ...)
//  4. dangerous term set membership
//  5. encoded-payload detection on tokens and quoted segments, hex
//     before base64 (alphabet subset ordering)
//  6. suspicious tool set membership
func (d *Detector) Assess(command string) Assessment {
	words := tokenize(command)

	// Round 1: safe short-circuit prevents the rounds below from flagging
	// ordinary application launches.
	if len(words) > 0 {
		if _, ok := d.safe[words[0]]; ok {
			return Assessment{Level: Safe, Reason: "known safe command"}
		}
	}

	// Round 2: critical patterns.
	for _, p := range d.critical {
		if p.re.MatchString(command) {
			return Assessment{
				Level:          Critical,
				Reason:         p.reason,
				Recommendation: p.recommendation,
				MatchedPattern: p.label,
			}
		}
	}

	// Round 3: commands that are only dangerous with particular arguments.
	if a, ok := d.assessArguments(command); ok {
		return a
	}

	// Round 4: dangerous term membership, word by word to avoid matching
	// substrings of innocent tokens.
	for _, w := range words {
		if _, ok := d.dangerous[w]; ok {
			return Assessment{
				Level:          Dangerous,
				Reason:         fmt.Sprintf("command %q can cause serious security issues or data loss", w),
				Recommendation: "Review this command carefully and consider safer alternatives.",
				MatchedPattern: w,
			}
		}
	}

	// Round 5: encoded payloads, before the tool names themselves, so the
	// verdict names the payload rather than the decoder invoking it.
	if a, ok := d.assessEncoded(command, words); ok {
		return a
	}

	// Round 6: suspicious tools.
	for _, w := range words {
		if _, ok := d.suspicious[w]; ok {
			return Assessment{
				Level:          Suspicious,
				Reason:         fmt.Sprintf("command %q is often used in malicious contexts but may be legitimate", w),
				Recommendation: "Verify this command is necessary and that you trust its source.",
				MatchedPattern: w,
			}
		}
	}

	return Assessment{Level: Safe, Reason: "no dangerous patterns detected"}
}

// assessArguments covers commands whose danger depends on their argument
// shape rather than the command word alone.
func (d *Detector) assessArguments(command string) (Assessment, bool) {
	if strings.Contains(command, "chmod") && strings.Contains(command, "777") {
		return Assessment{
			Level:          Dangerous,
			Reason:         "mode 777 makes files world-writable and world-executable",
			Recommendation: "Use restrictive permissions such as 644 or 755. Never 777.",
			MatchedPattern: "chmod 777",
		}, true
	}

	// Download piped straight into a shell: the classic remote code
	// execution shape.
	if (strings.Contains(command, "| sh") || strings.Contains(command, "| bash")) &&
		(strings.Contains(command, "curl") || strings.Contains(command, "wget") || strings.Contains(command, "fetch")) {
		return Assessment{
			Level:          Dangerous,
			Reason:         "downloads and executes untrusted code",
			Recommendation: "Download first, inspect the script, then run it manually if safe.",
			MatchedPattern: "pipe to shell",
		}, true
	}

	if strings.Contains(command, "rm") &&
		(strings.Contains(command, "-rf") || strings.Contains(command, "-fr")) {
		return Assessment{
			Level:          Dangerous,
			Reason:         "recursive file deletion can destroy entire directories",
			Recommendation: "Double-check the path, or use a trash command for reversibility.",
			MatchedPattern: "rm -rf",
		}, true
	}

	if strings.Contains(command, "iptables") && strings.Contains(command, "-F") {
		return Assessment{
			Level:          Dangerous,
			Reason:         "flushing firewall rules removes all network protection",
			Recommendation: "Only do this if you understand the security implications.",
			MatchedPattern: "iptables -F",
		}, true
	}

	return Assessment{}, false
}

// assessEncoded scans tokens and double-quoted segments for encoded
// payloads. Tokens that are themselves known command names are skipped so
// tools like "uuencode" are not mistaken for encoded data.
func (d *Detector) assessEncoded(command string, words []string) (Assessment, bool) {
	for _, w := range words {
		if d.isKnownCommand(w) {
			continue
		}
		switch detectEncoded(w) {
		case encodingHex:
			return Assessment{
				Level:          Suspicious,
				Reason:         fmt.Sprintf("possible hex-encoded data %q: high entropy suggests obfuscation", w),
				Recommendation: fmt.Sprintf("Decode and inspect before executing: echo %s | xxd -r -p", w),
				MatchedPattern: "hex encoding",
			}, true
		case encodingBase64:
			return Assessment{
				Level:          Suspicious,
				Reason:         fmt.Sprintf("possible base64-encoded command %q: may hide malicious intent", w),
				Recommendation: fmt.Sprintf("Decode and inspect before executing: echo %s | base64 -d", w),
				MatchedPattern: "base64 encoding",
			}, true
		}
	}

	for _, q := range quotedSegments(command) {
		switch detectEncoded(q) {
		case encodingHex:
			return Assessment{
				Level:          Suspicious,
				Reason:         fmt.Sprintf("possible hex-encoded payload in quotes: %q", q),
				Recommendation: "Decode and inspect the quoted string before executing.",
				MatchedPattern: "hex in quotes",
			}, true
		case encodingBase64:
			return Assessment{
				Level:          Suspicious,
				Reason:         fmt.Sprintf("possible base64-encoded payload in quotes: %q", q),
				Recommendation: "Decode and inspect the quoted string before executing.",
				MatchedPattern: "base64 in quotes",
			}, true
		}
	}

	return Assessment{}, false
}

func (d *Detector) isKnownCommand(w string) bool {
	if _, ok := d.safe[w]; ok {
		return true
	}
	if _, ok := d.dangerous[w]; ok {
		return true
	}
	_, ok := d.suspicious[w]
	return ok
}

// tokenize splits a command into words with shell quoting respected,
// falling back to whitespace fields when the command is not valid shell
// syntax (unbalanced quotes and the like must still be assessable).
func tokenize(command string) []string {
	parser := shellwords.NewParser()
	tokens, err := parser.Parse(command)
	if err != nil || len(tokens) == 0 {
		return strings.Fields(command)
	}
	return tokens
}
