package ui

import (
	"strings"
)

// ParseCSS parses a primitive CSS file: compound selectors made of a type, .class and #id parts
// (".card.selected", "button#startAR"), comma-separated selector lists, and blocks of
// "key: value;". No descendant combinators, no pseudo-classes, no @rules; such blocks are skipped.
// Later rules override earlier ones.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{Rules: nil}
	content = stripCSSComments(content)
	for {
		rules, rest, ok := parseOneRule(content)
		if !ok {
			break
		}
		sheet.Rules = append(sheet.Rules, rules...)
		content = rest
	}
	return sheet, nil
}

func stripCSSComments(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if i+1 < len(s) && s[i] == '/' && s[i+1] == '*' {
			j := i + 2
			for j+1 < len(s) && !(s[j] == '*' && s[j+1] == '/') {
				j++
			}
			if j+1 < len(s) {
				j += 2
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// parseOneRule finds the next "selectors { ... }" and returns one rule per selector and the rest of the string.
func parseOneRule(s string) ([]Rule, string, bool) {
	for {
		open := strings.Index(s, "{")
		if open == -1 {
			return nil, "", false
		}
		end := findMatchingBrace(s, open)
		if end == -1 {
			return nil, "", false
		}
		var sels []Selector
		valid := true
		for _, raw := range strings.Split(strings.TrimSpace(s[:open]), ",") {
			sel, ok := ParseSelector(raw)
			if !ok {
				valid = false
				break
			}
			sels = append(sels, sel)
		}
		rest := strings.TrimSpace(s[end+1:])
		if !valid {
			s = rest
			continue
		}
		props := parseDeclarations(strings.TrimSpace(s[open+1 : end]))
		rules := make([]Rule, 0, len(sels))
		for _, sel := range sels {
			rules = append(rules, Rule{Selector: sel, Props: props})
		}
		return rules, rest, true
	}
}

// ParseSelector parses a compound selector such as "button.primary#go" or ".card.selected".
func ParseSelector(raw string) (Selector, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t\n>+~:[*") {
		return Selector{}, false
	}
	var sel Selector
	i := 0
	if raw[0] != '.' && raw[0] != '#' {
		j := nextPart(raw, 0)
		sel.Type = raw[:j]
		i = j
	}
	for i < len(raw) {
		j := nextPart(raw, i+1)
		name := raw[i+1 : j]
		if name == "" {
			return Selector{}, false
		}
		switch raw[i] {
		case '.':
			sel.Classes = append(sel.Classes, name)
		case '#':
			if sel.ID != "" {
				return Selector{}, false
			}
			sel.ID = name
		}
		i = j
	}
	return sel, true
}

func nextPart(s string, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == '.' || s[i] == '#' {
			return i
		}
	}
	return len(s)
}

func findMatchingBrace(s string, openIdx int) int {
	depth := 1
	for i := openIdx + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseDeclarations(body string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colon := strings.Index(part, ":")
		if colon == -1 {
			continue
		}
		k := strings.TrimSpace(part[:colon])
		v := strings.TrimSpace(part[colon+1:])
		if k != "" {
			props[k] = v
		}
	}
	return props
}
