package issues

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Issue is a tracker-neutral view of one issue, carrying everything the
// story extractor needs.
type Issue struct {
	Number    int        `yaml:"number,omitempty" json:"number,omitempty"`
	Key       string     `yaml:"key,omitempty" json:"key,omitempty"`
	Title     string     `yaml:"title,omitempty" json:"title,omitempty"`
	Body      string     `yaml:"body,omitempty" json:"body,omitempty"`
	State     string     `yaml:"state,omitempty" json:"state,omitempty"`
	CreatedAt time.Time  `yaml:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt *time.Time `yaml:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	Assignee  string     `yaml:"assignee,omitempty" json:"assignee,omitempty"`
	Labels    []string   `yaml:"labels,omitempty" json:"labels,omitempty"`
}

const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// IsClosed returns true when the tracker reported the issue as closed.
func (i Issue) IsClosed() bool {
	return strings.EqualFold(strings.TrimSpace(i.State), StateClosed)
}

// Ref returns the identifier a story built from this issue should carry:
// the tracker key when there is one, otherwise "#" and the issue number.
func (i Issue) Ref() string {
	if i.Key != "" {
		return i.Key
	}
	return "#" + strconv.Itoa(i.Number)
}

// Tracker lists issues from an issue tracker.
type Tracker interface {
	// ListIssues returns issues in every state, in the order the tracker supplies them.
	ListIssues(ctx context.Context) ([]Issue, error)
	// TestConnectivity returns an error if the tracker cannot be reached.
	TestConnectivity(ctx context.Context) error
}
