package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/naveego/storyreader/pkg/stories"
)

// TitleMarker is removed from issue titles.
const TitleMarker = "[USER STORY]"

var titleMarkerRE = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(TitleMarker))

// Title strips every occurrence of TitleMarker (case-insensitive) and trims
// the result. Stripping repeats until nothing changes, so Title(Title(x)) == Title(x).
func Title(title string) string {
	for {
		stripped := strings.TrimSpace(titleMarkerRE.ReplaceAllString(title, ""))
		if stripped == title {
			return stripped
		}
		title = stripped
	}
}

// narrativeRE expects "As a" at the start of a line. Each label may be
// bold and its value may start on the following line.
var narrativeRE = regexp.MustCompile(`(?ims)^[ \t]*\*{0,2}As an?\b\*{0,2}\s*(.+?)[ \t]*,?\s*\*{0,2}\bI want\b\*{0,2}\s*(.+?)[ \t]*,?\s*\*{0,2}\bSo that\b\*{0,2}\s*([^\s*][^\n]*)`)

// Narrative finds the actor / capability / rationale triple in the User Story
// section and reassembles it into one sentence.
func Narrative(body string) (string, bool) {
	section, ok := Section(body, SectionUserStory)
	if !ok {
		return "", false
	}
	m := narrativeRE.FindStringSubmatch(section)
	if m == nil {
		return "", false
	}
	actor, capability, rationale := part(m[1]), part(m[2]), part(m[3])
	if actor == "" || capability == "" || rationale == "" {
		return "", false
	}
	return fmt.Sprintf("As a %s, I want %s, so that %s", actor, capability, rationale), true
}

// clean collapses inner whitespace and trims surrounding space.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// part cleans one captured narrative value. A value made only of markup
// comes back empty.
func part(s string) string {
	return clean(trimMarkup(clean(s)))
}

// Description returns the trimmed Description section.
func Description(body string) (string, bool) {
	section, ok := Section(body, SectionDescription)
	if !ok {
		return "", false
	}
	section = strings.TrimSpace(section)
	return section, section != ""
}

var checklistRE = regexp.MustCompile(`^[ \t]*[-*+][ \t]*\[[ xX]?\][ \t]*(.*)$`)

// AcceptanceCriteria returns each checklist line of the Acceptance Criteria
// section in document order, with the checkbox marker removed.
func AcceptanceCriteria(body string) []string {
	out := []string{}
	section, ok := Section(body, SectionAcceptanceCriteria)
	if !ok {
		return out
	}
	for _, line := range strings.Split(section, "\n") {
		if m := checklistRE.FindStringSubmatch(line); m != nil {
			out = append(out, strings.TrimSpace(m[1]))
		}
	}
	return out
}

var (
	estimateRE = regexp.MustCompile(`(?i)\bEstimate[ \t]*:[ \t]*\**[ \t]*([^\s*]+)`)
	digitsRE   = regexp.MustCompile(`^[0-9]+$`)
)

// Estimate parses the Estimate value of the Story Points section. Anything
// other than a non-negative integer is reported as absent.
func Estimate(body string) (int, bool) {
	section, ok := Section(body, SectionStoryPoints)
	if !ok {
		return 0, false
	}
	m := estimateRE.FindStringSubmatch(section)
	if m == nil {
		return 0, false
	}
	if !digitsRE.MatchString(m[1]) {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

var priorityRE = regexp.MustCompile(`(?i)\bPriority[ \t]*:[ \t]*\**[ \t]*(\w+)`)

// Priority returns the single word following "Priority:" in the Priority section.
func Priority(body string) (string, bool) {
	section, ok := Section(body, SectionPriority)
	if !ok {
		return "", false
	}
	m := priorityRE.FindStringSubmatch(section)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var epicRE = regexp.MustCompile(`(?i)\bEpic[ \t]*:([^\n]*)`)

// Epic returns the rest of the first "Epic:" line anywhere in the body.
func Epic(body string) (string, bool) {
	m := epicRE.FindStringSubmatch(normalizeNewlines(body))
	if m == nil {
		return "", false
	}
	epic := trimMarkup(m[1])
	return epic, epic != ""
}

var tagsRE = regexp.MustCompile(`(?i)\bTags[ \t]*:([^\n]*)`)

// Tags splits the first "Tags:" line on commas. Empty entries are dropped.
func Tags(body string) ([]string, bool) {
	m := tagsRE.FindStringSubmatch(normalizeNewlines(body))
	if m == nil {
		return nil, false
	}
	var out []string
	for _, tag := range strings.Split(m[1], ",") {
		if tag = trimMarkup(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out, len(out) > 0
}

// trimMarkup trims whitespace and the bold/code markers that surround
// values written as "**Epic:** Authentication".
func trimMarkup(s string) string {
	return strings.Trim(s, " \t*`_")
}

// Status maps a tracker state onto the two-value story vocabulary.
func Status(closed bool) string {
	if closed {
		return stories.StatusClosed
	}
	return stories.StatusOpen
}
