// Package danger implements pattern, hashset, and entropy based risk
// assessment of commands launched from keybindings. It is the second
// security layer: commands that contain no injection syntax at all can
// still be inherently destructive or obfuscated, and this package is what
// catches them.
package danger

import (
	"math"
	"strings"
)

// Entropy thresholds in bits per character. These are fit to measured
// samples, not derived from alphabet size: the theoretical maxima are 6.0
// (base64) and 4.0 (hex), but short real-world payloads carry structure
// from their source text and padding, so they land well below that.
// Measured encoded shell commands cluster around 4.0-4.5 (base64) and
// 3.0-3.5 (hex).
const (
	base64EntropyThreshold = 4.0
	hexEntropyThreshold    = 3.0
)

// minEncodedLength is the shortest string worth testing for encoding.
// Below this, entropy estimates are meaningless and incidental short
// tokens would constantly false-positive.
const minEncodedLength = 8

// Shannon computes Shannon entropy in bits per character over the exact
// character sequence given, with no case or whitespace normalization.
// The empty string has zero entropy by definition.
func Shannon(s string) float64 {
	if s == "" {
		return 0.0
	}
	counts := make(map[rune]int)
	total := 0
	for _, r := range s {
		counts[r]++
		total++
	}
	entropy := 0.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// encoding identifies the structural family a string could belong to.
type encoding int

const (
	encodingNone encoding = iota
	encodingHex
	encodingBase64
)

// classifyEncoding determines which encoding a string is structurally
// valid as. Hex is checked first: its alphabet [0-9a-fA-F] is a strict
// subset of the base64 alphabet, so testing base64 first would misread
// every hex payload as base64. A string that passes the hex structural
// test is therefore always reported as hex, even when it happens to be
// valid base64 too; this ordering is deliberate and load-bearing.
func classifyEncoding(s string) encoding {
	if isHexStructure(s) {
		return encodingHex
	}
	if isBase64Structure(s) {
		return encodingBase64
	}
	return encodingNone
}

// isHexStructure reports whether s could be hex-encoded bytes: even
// length, all hex digits.
func isHexStructure(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}

// isBase64Structure reports whether s could be base64: length a multiple
// of four, all characters in the base64 alphabet including '=' padding.
func isBase64Structure(s string) bool {
	if s == "" || len(s)%4 != 0 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '+' || r == '/' || r == '=':
		default:
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsLikelyHex reports whether s looks like hex-encoded payload data:
// long enough to judge, structurally valid hex, and with entropy above
// the fitted hex threshold.
func IsLikelyHex(s string) bool {
	if len(s) < minEncodedLength || !isHexStructure(s) {
		return false
	}
	return Shannon(s) > hexEntropyThreshold
}

// IsLikelyBase64 reports whether s looks like base64-encoded payload
// data. The hex structural test is consulted first; anything valid as hex
// is never classified base64 (see classifyEncoding).
func IsLikelyBase64(s string) bool {
	if len(s) < minEncodedLength || classifyEncoding(s) != encodingBase64 {
		return false
	}
	return Shannon(s) > base64EntropyThreshold
}

// detectEncoded runs the ordered encoding checks on a candidate token and
// returns the matched encoding, or encodingNone when the token is either
// structurally innocent or too low-entropy to be a payload.
func detectEncoded(s string) encoding {
	if len(s) < minEncodedLength {
		return encodingNone
	}
	switch classifyEncoding(s) {
	case encodingHex:
		if Shannon(s) > hexEntropyThreshold {
			return encodingHex
		}
	case encodingBase64:
		if Shannon(s) > base64EntropyThreshold {
			return encodingBase64
		}
	}
	return encodingNone
}

// quotedSegments returns the double-quoted substrings of a command, in
// order. Encoded payloads are frequently smuggled inside quotes, e.g.
// perl -e 'print pack("H*", "726d...")'.
func quotedSegments(command string) []string {
	parts := strings.Split(command, `"`)
	var out []string
	for i := 1; i < len(parts); i += 2 {
		out = append(out, parts[i])
	}
	return out
}
