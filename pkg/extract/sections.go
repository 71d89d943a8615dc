package extract

import (
	"regexp"
	"strings"
)

const (
	SectionUserStory          = "User Story"
	SectionDescription        = "Description"
	SectionAcceptanceCriteria = "Acceptance Criteria"
	SectionStoryPoints        = "Story Points"
	SectionPriority           = "Priority"
)

// headingRE matches an ATX heading of any level. Every heading ends the
// section before it; only level two and deeper can open a named section.
var headingRE = regexp.MustCompile(`(?m)^[ \t]*(#{1,6})([ \t]*)([^\n]*?)[ \t#]*$`)

type heading struct {
	level int
	title string
	start int
	end   int
}

// normalizeNewlines converts CRLF and CR line endings to LF.
func normalizeNewlines(text string) string {
	text = strings.Replace(text, "\r\n", "\n", -1)
	return strings.Replace(text, "\r", "\n", -1)
}

func headings(body string) []heading {
	var out []heading
	for _, m := range headingRE.FindAllStringSubmatchIndex(body, -1) {
		level := m[3] - m[2]
		title := strings.ToLower(strings.TrimSpace(body[m[6]:m[7]]))
		// "#tag" at the start of a line is text, not a heading
		if level == 1 && m[4] == m[5] && title != "" {
			continue
		}
		out = append(out, heading{level: level, title: title, start: m[0], end: m[1]})
	}
	return out
}

// Section returns the text between the "## name" heading and the next
// heading of any level (or the end of text). Heading names are compared
// case-insensitively. A heading whose title is exactly name wins; failing
// that, the first heading with trailing text after the name is used.
func Section(body, name string) (string, bool) {
	body = normalizeNewlines(body)
	want := strings.ToLower(strings.TrimSpace(name))

	hs := headings(body)
	found := -1
	for i, h := range hs {
		if h.level < 2 || !strings.HasPrefix(h.title, want) {
			continue
		}
		rest := h.title[len(want):]
		if rest == "" {
			found = i
			break
		}
		// the name has to end on a word boundary: "Priority" must not match "Priorityless"
		if found < 0 && !isWordByte(rest[0]) {
			found = i
		}
	}
	if found < 0 {
		return "", false
	}

	end := len(body)
	if found+1 < len(hs) {
		end = hs[found+1].start
	}
	return body[hs[found].end:end], true
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}
