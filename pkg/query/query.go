// Package query holds the in-memory operations over a set of stories.
// None of them modify their input.
package query

import (
	"sort"
	"strings"

	"github.com/naveego/storyreader/pkg/filter"
	"github.com/naveego/storyreader/pkg/stories"
	"github.com/naveego/storyreader/pkg/util/stringsn"
	"github.com/pkg/errors"
)

// Fields which can be used with FilterByField and DistinctValues.
const (
	FieldStatus   = stories.LabelStatus
	FieldPriority = stories.LabelPriority
	FieldAssignee = stories.LabelAssignee
)

var FilterableFields = []string{FieldStatus, FieldPriority, FieldAssignee}

type EpicGroup struct {
	Epic    string          `json:"epic" yaml:"epic"`
	Stories stories.Stories `json:"stories" yaml:"stories"`
}

// GroupByEpic groups stories by epic. Groups are ordered by epic name and
// the stories in each group by id.
func GroupByEpic(in []stories.Story) []EpicGroup {
	byEpic := map[string]stories.Stories{}
	for _, s := range in {
		byEpic[s.Epic] = append(byEpic[s.Epic], s.Clone())
	}

	out := make([]EpicGroup, 0, len(byEpic))
	for epic, members := range byEpic {
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].ID < members[j].ID
		})
		out = append(out, EpicGroup{Epic: epic, Stories: members})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Epic < out[j].Epic
	})
	return out
}

func fieldValue(field string) (func(stories.Story) string, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case FieldStatus:
		return func(s stories.Story) string { return s.Status }, nil
	case FieldPriority:
		return func(s stories.Story) string { return s.Priority }, nil
	case FieldAssignee:
		return func(s stories.Story) string { return s.Assignee }, nil
	}
	return nil, errors.Errorf("unknown field %q (valid fields are %s)", field, strings.Join(FilterableFields, ", "))
}

// FilterByField returns the stories whose field exactly equals value, in
// their original order.
func FilterByField(in []stories.Story, field, value string) (stories.Stories, error) {
	get, err := fieldValue(field)
	if err != nil {
		return nil, err
	}
	out := stories.Stories{}
	for _, s := range in {
		if get(s) == value {
			out = append(out, s.Clone())
		}
	}
	return out, nil
}

// DistinctValues returns the sorted distinct non-empty values of field.
func DistinctValues(in []stories.Story, field string) ([]string, error) {
	get, err := fieldValue(field)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(in))
	for _, s := range in {
		values = append(values, get(s))
	}
	return stringsn.SortedDistinctNonEmpty(values...), nil
}

// Search returns the stories whose title, description, acceptance criteria
// or tags contain keyword, ignoring case. An empty keyword matches nothing.
func Search(in []stories.Story, keyword string) stories.Stories {
	out := stories.Stories{}
	if keyword == "" {
		return out
	}
	for _, s := range in {
		if matches(s, keyword) {
			out = append(out, s.Clone())
		}
	}
	return out
}

func matches(s stories.Story, keyword string) bool {
	return stringsn.ContainsFold([]string{s.Title, s.Description}, keyword) ||
		stringsn.ContainsFold(s.AcceptanceCriteria, keyword) ||
		stringsn.ContainsFold(s.Tags, keyword)
}

// FindByID returns the first story whose id equals id, ignoring case.
func FindByID(in []stories.Story, id string) (stories.Story, bool) {
	id = strings.TrimSpace(id)
	for _, s := range in {
		if strings.EqualFold(s.ID, id) {
			return s.Clone(), true
		}
	}
	return stories.Story{}, false
}

// Where returns the stories matching every filter expression, such as
// "priority==High", "epic?=^Auth" or "assignee!=bob".
func Where(in []stories.Story, expressions ...string) (stories.Stories, error) {
	filters, err := filter.ParseAll(expressions...)
	if err != nil {
		return nil, err
	}
	out := stories.Stories{}
	for _, s := range filter.Include(stories.Stories(in), filters...).(stories.Stories) {
		out = append(out, s.Clone())
	}
	return out, nil
}
