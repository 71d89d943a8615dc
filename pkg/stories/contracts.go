package stories

import (
	"fmt"
	"time"

	"github.com/naveego/storyreader/pkg/filter"
)

const (
	// DefaultPriority is used when an issue body carries no Priority section.
	DefaultPriority = "Medium"
	// UnassignedEpic is used when an issue body carries no Epic line.
	UnassignedEpic = "Unassigned"

	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

// Story is the normalized record produced by both ingestion paths.
// The json tags are the schema of the story files stored in the repository.
type Story struct {
	ID                 string    `json:"id" yaml:"id"`
	Title              string    `json:"title" yaml:"title"`
	Description        string    `json:"description" yaml:"description"`
	AcceptanceCriteria []string  `json:"acceptanceCriteria" yaml:"acceptanceCriteria"`
	Priority           string    `json:"priority" yaml:"priority"`
	Status             string    `json:"status" yaml:"status"`
	Assignee           string    `json:"assignee" yaml:"assignee"`
	EstimatedHours     int       `json:"estimatedHours" yaml:"estimatedHours"`
	Tags               []string  `json:"tags" yaml:"tags"`
	Epic               string    `json:"epic" yaml:"epic"`
	CreatedDate        time.Time `json:"createdDate" yaml:"createdDate"`
	LastModified       time.Time `json:"lastModified" yaml:"lastModified"`
}

func (s Story) String() string {
	return fmt.Sprintf("[%s] %s - %s (%s)", s.ID, s.Title, s.Status, s.Priority)
}

// Normalized returns a copy of s with nil sequences replaced by empty ones
// and a negative estimate clamped to zero.
func (s Story) Normalized() Story {
	if s.AcceptanceCriteria == nil {
		s.AcceptanceCriteria = []string{}
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.EstimatedHours < 0 {
		s.EstimatedHours = 0
	}
	return s
}

// Clone returns a deep copy of s, so callers can't reach into the
// sequences of a story they did not build.
func (s Story) Clone() Story {
	out := s
	out.AcceptanceCriteria = append([]string{}, s.AcceptanceCriteria...)
	out.Tags = append([]string{}, s.Tags...)
	return out
}

// GetLabels implements filter.Labelled.
func (s Story) GetLabels() filter.Labels {
	return filter.LabelsFromMap(map[string]string{
		LabelID:       s.ID,
		LabelTitle:    s.Title,
		LabelStatus:   s.Status,
		LabelPriority: s.Priority,
		LabelAssignee: s.Assignee,
		LabelEpic:     s.Epic,
	})
}

const (
	LabelID       = "id"
	LabelTitle    = "title"
	LabelStatus   = "status"
	LabelPriority = "priority"
	LabelAssignee = "assignee"
	LabelEpic     = "epic"
)

// Stories is an ordered collection of stories.
type Stories []Story

func (s Stories) Headers() []string {
	return []string{"ID", "Title", "Status", "Priority", "Assignee", "Estimate", "Epic"}
}

func (s Stories) Rows() [][]string {
	var out [][]string
	for _, story := range s {
		out = append(out, []string{
			story.ID,
			story.Title,
			story.Status,
			story.Priority,
			story.Assignee,
			fmt.Sprint(story.EstimatedHours),
			story.Epic,
		})
	}
	return out
}
