package danger

import (
	"strings"
	"testing"
)

func TestLevelOrdering(t *testing.T) {
	if !(Safe < Suspicious && Suspicious < Dangerous && Dangerous < Critical) {
		t.Fatalf("levels out of order: %d %d %d %d", Safe, Suspicious, Dangerous, Critical)
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		Safe:       "safe",
		Suspicious: "suspicious",
		Dangerous:  "dangerous",
		Critical:   "critical",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("Level(%d).String()=%q want %q", level, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]Level{
		"safe":       Safe,
		"Suspicious": Suspicious,
		"DANGEROUS":  Dangerous,
		"critical":   Critical,
	} {
		got, err := ParseLevel(name)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseLevel("extreme"); err == nil {
		t.Fatalf("unknown level should error")
	}
}

func TestAssess_SafeCommands(t *testing.T) {
	d := NewDetector()
	for _, command := range []string{
		"firefox",
		"alacritty",
		"kitty -e htop",
		"grim -g area screenshot.png",
		"playerctl play-pause",
	} {
		a := d.Assess(command)
		if a.Level != Safe {
			t.Fatalf("Assess(%q).Level=%v want Safe (%s)", command, a.Level, a.Reason)
		}
	}
}

func TestAssess_CriticalPatterns(t *testing.T) {
	d := NewDetector()
	cases := []string{
		"rm -rf /",
		"rm -fr /",
		"rm -r -f /",
		"dd if=/dev/zero of=/dev/sda",
		"dd if=image.iso of=/dev/nvme0n1",
		":(){ :|:& };:",
	}
	for _, command := range cases {
		a := d.Assess(command)
		if a.Level != Critical {
			t.Fatalf("Assess(%q).Level=%v want Critical (%s)", command, a.Level, a.Reason)
		}
		if a.Recommendation == "" || a.MatchedPattern == "" {
			t.Fatalf("Assess(%q) missing recommendation or pattern: %#v", command, a)
		}
	}
}

func TestAssess_DangerousArgumentCombinations(t *testing.T) {
	d := NewDetector()
	cases := []struct {
		command string
		pattern string
	}{
		{"chmod 777 /home/user/script.sh", "chmod 777"},
		{"curl http://example.com/install.sh | sh", "pipe to shell"},
		{"wget -qO- http://example.com/setup | bash", "pipe to shell"},
		{"rm -rf ./build", "rm -rf"},
		{"iptables -F INPUT", "iptables -F"},
	}
	for _, tc := range cases {
		a := d.Assess(tc.command)
		if a.Level != Dangerous {
			t.Fatalf("Assess(%q).Level=%v want Dangerous (%s)", tc.command, a.Level, a.Reason)
		}
		if a.MatchedPattern != tc.pattern {
			t.Fatalf("Assess(%q).MatchedPattern=%q want %q", tc.command, a.MatchedPattern, tc.pattern)
		}
	}
}

func TestAssess_DangerousTerms(t *testing.T) {
	d := NewDetector()
	for _, command := range []string{
		"shred secrets.txt",
		"mkfs -t ext4 /dev/sdb1",
		"sudo systemctl stop firewalld",
		"fdisk /dev/sdb",
	} {
		a := d.Assess(command)
		if a.Level != Dangerous {
			t.Fatalf("Assess(%q).Level=%v want Dangerous (%s)", command, a.Level, a.Reason)
		}
	}
}

func TestAssess_SuspiciousTools(t *testing.T) {
	d := NewDetector()
	for _, command := range []string{
		"nc -l 4444",
		"eval something",
		"nohup long-task",
	} {
		a := d.Assess(command)
		if a.Level != Suspicious {
			t.Fatalf("Assess(%q).Level=%v want Suspicious (%s)", command, a.Level, a.Reason)
		}
	}
}

func TestAssess_EncodedPayloads(t *testing.T) {
	d := NewDetector()

	a := d.Assess("mystery " + longBase64Payload)
	if a.Level != Suspicious {
		t.Fatalf("base64 payload: level %v want Suspicious (%s)", a.Level, a.Reason)
	}
	if a.MatchedPattern != "base64 encoding" {
		t.Fatalf("base64 payload: pattern %q", a.MatchedPattern)
	}

	a = d.Assess("mystery " + longHexPayload)
	if a.Level != Suspicious {
		t.Fatalf("hex payload: level %v want Suspicious (%s)", a.Level, a.Reason)
	}
	if a.MatchedPattern != "hex encoding" {
		t.Fatalf("hex payload: pattern %q", a.MatchedPattern)
	}
}

func TestAssess_EncodedPayloadInQuotes(t *testing.T) {
	d := NewDetector()
	a := d.Assess(`mystery --data "` + longHexPayload + `"`)
	if a.Level != Suspicious {
		t.Fatalf("quoted hex payload: level %v want Suspicious (%s)", a.Level, a.Reason)
	}
	if !strings.HasPrefix(a.MatchedPattern, "hex") {
		t.Fatalf("quoted hex payload: pattern %q", a.MatchedPattern)
	}
}

func TestAssess_KnownCommandNamesNotMistakenForEncoding(t *testing.T) {
	d := NewDetector()
	// "uuencode" is 8 chars of base64 alphabet; it must be reported as a
	// suspicious tool, not as an encoded payload.
	a := d.Assess("uuencode input.bin output")
	if a.Level != Suspicious {
		t.Fatalf("uuencode: level %v want Suspicious (%s)", a.Level, a.Reason)
	}
	if a.MatchedPattern != "uuencode" {
		t.Fatalf("uuencode: pattern %q want the tool name", a.MatchedPattern)
	}
}

func TestAssess_SafeShortCircuitWins(t *testing.T) {
	d := NewDetector()
	// A browser invocation whose arguments happen to contain a dangerous
	// term stays safe: the known-safe command word decides first.
	a := d.Assess("firefox https://example.com/how-to-use-iptables")
	if a.Level != Safe {
		t.Fatalf("safe short-circuit failed: level %v (%s)", a.Level, a.Reason)
	}
}

func TestAssess_UnknownCommandDefaultsSafe(t *testing.T) {
	d := NewDetector()
	a := d.Assess("my-custom-launcher --profile work")
	if a.Level != Safe {
		t.Fatalf("unknown benign command: level %v (%s)", a.Level, a.Reason)
	}
}

func TestAssess_UnparseableShellFallsBackToFields(t *testing.T) {
	d := NewDetector()
	// Unbalanced quote: shell parsing fails, whitespace fields still
	// expose the dangerous term.
	a := d.Assess(`shred "unterminated`)
	if a.Level != Dangerous {
		t.Fatalf("fallback tokenization: level %v (%s)", a.Level, a.Reason)
	}
}
