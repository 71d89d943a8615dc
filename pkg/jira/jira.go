package jira

import (
	"context"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"github.com/naveego/storyreader/pkg/issues"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	pageSize = 50
	// statusCategoryDone is the key Jira gives every status in the Done column.
	statusCategoryDone = "done"
)

// Client lists issues from Jira. It implements issues.Tracker.
type Client struct {
	Config
	jira    *jira.Client
	timeout time.Duration
	log     *logrus.Entry
}

var _ issues.Tracker = &Client{}

func NewClient(config Config, timeout time.Duration, log *logrus.Entry) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tp := jira.BasicAuthTransport{
		Username: config.JiraUsername,
		Password: config.JiraToken,
	}

	jiraClient, err := jira.NewClient(tp.Client(), config.JiraUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "create jira client for %q", config.JiraUrl)
	}

	return &Client{
		Config:  config,
		jira:    jiraClient,
		timeout: timeout,
		log:     log.WithField("cmp", "jira").WithField("url", config.JiraUrl),
	}, nil
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.timeout)
}

func (c *Client) TestConnectivity(ctx context.Context) error {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	user, _, err := c.jira.User.GetSelfWithContext(ctx)
	if err != nil {
		return errors.Wrap(err, "get current jira user")
	}
	c.log.Infof("Connected to Jira as %s.", user.DisplayName)
	return nil
}

// ListIssues returns every issue selected by the configured JQL.
func (c *Client) ListIssues(ctx context.Context) ([]issues.Issue, error) {
	var out []issues.Issue
	opt := &jira.SearchOptions{MaxResults: pageSize}
	for {
		page, resp, err := c.search(ctx, opt)
		if err != nil {
			return nil, errors.Wrapf(err, "search jira with %q (starting at %d)", c.query(), opt.StartAt)
		}
		for _, ji := range page {
			out = append(out, mapIssue(ji))
		}
		c.log.WithField("startAt", opt.StartAt).Debugf("Listed %d issues.", len(page))

		opt.StartAt += len(page)
		if len(page) == 0 || resp == nil || opt.StartAt >= resp.Total {
			break
		}
	}
	return out, nil
}

func (c *Client) search(ctx context.Context, opt *jira.SearchOptions) ([]jira.Issue, *jira.Response, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	return c.jira.Issue.SearchWithContext(ctx, c.query(), opt)
}

func mapIssue(ji jira.Issue) issues.Issue {
	issue := issues.Issue{
		Key:    ji.Key,
		State:  issues.StateOpen,
		Labels: []string{},
	}
	fields := ji.Fields
	if fields == nil {
		return issue
	}

	issue.Title = fields.Summary
	issue.Body = fields.Description
	issue.Labels = append(issue.Labels, fields.Labels...)

	if fields.Status != nil && fields.Status.StatusCategory.Key == statusCategoryDone {
		issue.State = issues.StateClosed
	}

	if fields.Assignee != nil {
		issue.Assignee = fields.Assignee.DisplayName
		if issue.Assignee == "" {
			issue.Assignee = fields.Assignee.Name
		}
	}

	issue.CreatedAt = time.Time(fields.Created)
	if updated := time.Time(fields.Updated); !updated.IsZero() {
		issue.UpdatedAt = &updated
	}
	return issue
}
