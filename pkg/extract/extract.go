// Package extract turns issue bodies written against the user story
// markdown template into stories.
package extract

import (
	"github.com/naveego/storyreader/pkg/issues"
	"github.com/naveego/storyreader/pkg/stories"
	"github.com/naveego/storyreader/pkg/util"
)

// Fields holds everything extracted from one issue body.
type Fields struct {
	Description        string
	AcceptanceCriteria []string
	EstimatedHours     int
	Priority           string
	Epic               string
	Tags               []string
}

// Parse runs every section extractor over body and applies the defaults
// for whatever is missing.
func Parse(body string) Fields {
	f := Fields{
		AcceptanceCriteria: AcceptanceCriteria(body),
		Priority:           stories.DefaultPriority,
		Epic:               stories.UnassignedEpic,
		Tags:               []string{},
	}

	if d, ok := Narrative(body); ok {
		f.Description = d
	} else if d, ok = Description(body); ok {
		f.Description = d
	}

	if n, ok := Estimate(body); ok {
		f.EstimatedHours = n
	}
	if p, ok := Priority(body); ok {
		f.Priority = p
	}
	if e, ok := Epic(body); ok {
		f.Epic = e
	}
	if t, ok := Tags(body); ok {
		f.Tags = t
	}

	return f
}

// FromIssue builds a story from an issue. A panic raised while parsing is
// returned as an Unexpected error so one bad issue can be skipped.
func FromIssue(issue issues.Issue) (stories.Story, error) {
	var story stories.Story
	err := util.TryCatch(issue.Ref(), func() error {
		story = fromIssue(issue)
		return nil
	})
	if err != nil {
		return stories.Story{}, stories.NewError(stories.Unexpected, issue.Ref(), err)
	}
	return story, nil
}

func fromIssue(issue issues.Issue) stories.Story {
	f := Parse(issue.Body)

	tags := f.Tags
	if len(tags) == 0 {
		tags = append([]string{}, issue.Labels...)
	}

	lastModified := issue.CreatedAt
	if issue.UpdatedAt != nil && !issue.UpdatedAt.IsZero() {
		lastModified = *issue.UpdatedAt
	}

	return stories.Story{
		ID:                 issue.Ref(),
		Title:              Title(issue.Title),
		Description:        f.Description,
		AcceptanceCriteria: f.AcceptanceCriteria,
		Priority:           f.Priority,
		Status:             Status(issue.IsClosed()),
		Assignee:           issue.Assignee,
		EstimatedHours:     f.EstimatedHours,
		Tags:               tags,
		Epic:               f.Epic,
		CreatedDate:        issue.CreatedAt,
		LastModified:       lastModified,
	}.Normalized()
}
