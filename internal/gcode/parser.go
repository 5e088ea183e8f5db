// Package gcode reads tool calls from NC programs, checks them against a
// magazine and writes controller tool tables.
package gcode

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ToolCall is a T word found in a program.
type ToolCall struct {
	Line   int // 1-based source line
	Number int
	Change bool // an M6 follows on the same line or before the next T word
}

var (
	toolWordRe   = regexp.MustCompile(`(?:^|[^A-Z])T\s*(\d+)`)
	toolChangeRe = regexp.MustCompile(`(?:^|[^A-Z])M0*6(?:[^0-9]|$)`)
)

// stripComments removes semicolon comments and every parenthetical comment.
func stripComments(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	for {
		start := strings.Index(line, "(")
		if start < 0 {
			break
		}
		end := strings.Index(line[start:], ")")
		if end < 0 {
			line = line[:start]
			break
		}
		line = line[:start] + " " + line[start+end+1:]
	}
	return strings.TrimSpace(line)
}

// ParseToolCalls returns every T word of the program in source order.
// Words inside comments are ignored. A T word followed by M6, on its own
// line or a later one, is marked as a tool change.
func ParseToolCalls(program string) []ToolCall {
	var calls []ToolCall

	for i, raw := range strings.Split(program, "\n") {
		line := strings.ToUpper(stripComments(raw))
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		matches := toolWordRe.FindAllStringSubmatch(line, -1)
		for _, m := range matches {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			calls = append(calls, ToolCall{Line: i + 1, Number: n})
		}

		if toolChangeRe.MatchString(line) && len(calls) > 0 {
			calls[len(calls)-1].Change = true
		}
	}

	return calls
}

// ToolNumbers returns the distinct tool numbers of calls in ascending order.
func ToolNumbers(calls []ToolCall) []int {
	seen := make(map[int]bool)
	var out []int
	for _, c := range calls {
		if !seen[c.Number] {
			seen[c.Number] = true
			out = append(out, c.Number)
		}
	}
	sort.Ints(out)
	return out
}
