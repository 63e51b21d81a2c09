package danger

import "regexp"

// criticalPattern pairs a compiled regex with the verdict it produces.
// These shapes are immediate, irreversible system destruction; a match is
// Critical and nothing downgrades it.
type criticalPattern struct {
	re             *regexp.Regexp
	reason         string
	recommendation string
	label          string
}

func buildCriticalPatterns() []criticalPattern {
	return []criticalPattern{
		{
			// rm with recursive+force flags targeting root, r before f.
			re:             regexp.MustCompile(`rm\s+.*[rR].*[fF].*\s+/\s*$`),
			reason:         "recursive filesystem deletion from root directory",
			recommendation: "Never run this command. It destroys the entire system.",
			label:          "rm -rf /",
		},
		{
			// Same, f before r.
			re:             regexp.MustCompile(`rm\s+.*[fF].*[rR].*\s+/\s*$`),
			reason:         "recursive filesystem deletion from root directory",
			recommendation: "Never run this command. It destroys the entire system.",
			label:          "rm -fr /",
		},
		{
			re:             regexp.MustCompile(`dd\s+.*of=/dev/(sd[a-z]|nvme\d+n\d+)`),
			reason:         "direct write to a disk device destroys data and the partition table",
			recommendation: "Remove this binding. It overwrites raw disk sectors.",
			label:          "dd to disk device",
		},
		{
			re:             regexp.MustCompile(`:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*}\s*;\s*:`),
			reason:         "fork bomb: exponential process spawning",
			recommendation: "This hangs or crashes the system. Remove it.",
			label:          "fork bomb",
		},
	}
}

// dangerousCommands can cause serious damage or escalation but are not
// instant destruction. O(1) membership; a match is Dangerous.
func buildDangerousCommands() map[string]struct{} {
	return stringSet(
		// File destruction
		"shred", "srm", "wipe",
		// Permission and ownership changes
		"chmod", "chown",
		// Privilege escalation
		"sudo", "doas", "su", "pkexec",
		// Disk operations
		"mkfs", "fdisk", "parted", "wipefs",
		// Firewall manipulation
		"iptables", "ufw", "firewalld",
		// Service control (can disable security services)
		"systemctl",
	)
}

// suspiciousCommands are tools with legitimate uses that also show up
// constantly in attacks. A match is Suspicious: warn, never block.
func buildSuspiciousCommands() map[string]struct{} {
	return stringSet(
		// Encoding tools
		"base64", "xxd", "uuencode",
		// Download tools
		"wget", "curl", "fetch", "aria2c",
		// Background execution / persistence
		"nohup", "disown", "screen", "tmux",
		// Dynamic code execution
		"eval", "exec", "source",
		// Reverse-shell staples
		"nc", "netcat", "ncat",
	)
}

// safeCommands is the known-safe short-circuit set: common user-facing
// applications. Interpreters (python, node) are deliberately absent since
// they run arbitrary code via arguments.
func buildSafeCommands() map[string]struct{} {
	return stringSet(
		// Browsers
		"firefox", "chromium", "brave", "vivaldi", "opera", "qutebrowser",
		// Terminals
		"kitty", "alacritty", "foot", "wezterm", "terminator", "st",
		// Editors
		"nvim", "vim", "emacs", "code", "nano", "gedit", "kate",
		// File managers
		"nautilus", "thunar", "dolphin", "pcmanfm",
		// System tray tools
		"pavucontrol", "nm-applet", "blueman",
		// Media
		"mpv", "vlc", "spotify", "obs",
	)
}

func stringSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
