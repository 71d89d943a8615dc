package git

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v20/github"
	"github.com/naveego/storyreader/pkg/issues"
	"github.com/naveego/storyreader/pkg/stories"
	"github.com/naveego/storyreader/pkg/walker"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Token      string `yaml:"token,omitempty" json:"token,omitempty"`
	Owner      string `yaml:"owner,omitempty" json:"owner,omitempty"`
	Repository string `yaml:"repository,omitempty" json:"repository,omitempty"`
	// BaseURL overrides the API root, for GitHub Enterprise.
	BaseURL string `yaml:"baseURL,omitempty" json:"baseURL,omitempty"`
	// IssueLabel limits the issues listed to those carrying the label.
	IssueLabel string `yaml:"issueLabel,omitempty" json:"issueLabel,omitempty"`
}

func (c Config) Repo() issues.RepoRef {
	return issues.RepoRef{Org: c.Owner, Repo: c.Repository}
}

const issuesPerPage = 100

// Client reads story files and issues from one GitHub repository.
// It implements walker.ContentClient and issues.Tracker.
type Client struct {
	github  *github.Client
	repo    issues.RepoRef
	label   string
	timeout time.Duration
	log     *logrus.Entry
}

var (
	_ walker.ContentClient = &Client{}
	_ issues.Tracker       = &Client{}
)

func NewClient(config Config, timeout time.Duration, log *logrus.Entry) (*Client, error) {
	if config.Owner == "" || config.Repository == "" {
		return nil, errors.New("github owner and repository are required")
	}
	gh, err := withBaseURL(NewGithubClient(config.Token), config.BaseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		github:  gh,
		repo:    config.Repo(),
		label:   config.IssueLabel,
		timeout: timeout,
		log:     log.WithField("cmp", "github").WithField("repo", config.Repo().String()),
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

	org, repo := c.repo.OrgAndRepo()
	r, _, err := c.github.Repositories.Get(ctx, org, repo)
	if err != nil {
		return errors.Wrapf(err, "get repository %s", c.repo)
	}
	c.log.Infof("Connected to repository %s.", r.GetFullName())
	return nil
}

func (c *Client) ListDirectory(ctx context.Context, path string) ([]walker.Entry, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	org, repo := c.repo.OrgAndRepo()
	file, dir, resp, err := c.github.Repositories.GetContents(ctx, org, repo, path, nil)
	if err != nil {
		return nil, classify(path, resp, errors.Wrapf(err, "list %s", path))
	}
	if file != nil {
		return nil, stories.Errorf(stories.NotFound, path, "%s is a file, not a directory", path)
	}

	out := make([]walker.Entry, 0, len(dir))
	for _, item := range dir {
		out = append(out, walker.Entry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Type: walker.EntryType(item.GetType()),
		})
	}
	return out, nil
}

func (c *Client) FetchFile(ctx context.Context, path string) (walker.FileContent, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	org, repo := c.repo.OrgAndRepo()
	file, _, resp, err := c.github.Repositories.GetContents(ctx, org, repo, path, nil)
	if err != nil {
		return walker.FileContent{}, classify(path, resp, errors.Wrapf(err, "fetch %s", path))
	}
	if file == nil {
		return walker.FileContent{}, stories.Errorf(stories.NotFound, path, "%s is a directory, not a file", path)
	}

	// The raw Content is passed on so that the walker applies its own
	// decoding rules; GetContent would decode it here.
	content := ""
	if file.Content != nil {
		content = *file.Content
	}
	return walker.FileContent{
		Content:  content,
		Encoding: file.GetEncoding(),
		Size:     file.GetSize(),
	}, nil
}

// ListIssues returns every issue in the repository, open and closed,
// excluding pull requests.
func (c *Client) ListIssues(ctx context.Context) ([]issues.Issue, error) {
	org, repo := c.repo.OrgAndRepo()
	opt := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: issuesPerPage},
	}
	if c.label != "" {
		opt.Labels = []string{c.label}
	}

	var out []issues.Issue
	for {
		page, resp, err := c.listPage(ctx, org, repo, opt)
		if err != nil {
			return nil, classify(c.repo.String(), resp, errors.Wrapf(err, "list issues (page %d)", opt.Page))
		}
		for _, gi := range page {
			if gi.IsPullRequest() {
				continue
			}
			out = append(out, mapIssue(gi))
		}
		c.log.WithField("page", opt.Page).Debugf("Listed %d issues.", len(page))
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return out, nil
}

func (c *Client) listPage(ctx context.Context, org, repo string, opt *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	return c.github.Issues.ListByRepo(ctx, org, repo, opt)
}

func mapIssue(gi *github.Issue) issues.Issue {
	issue := issues.Issue{
		Number:    gi.GetNumber(),
		Title:     gi.GetTitle(),
		Body:      gi.GetBody(),
		State:     gi.GetState(),
		CreatedAt: gi.GetCreatedAt(),
		UpdatedAt: gi.UpdatedAt,
		Assignee:  gi.GetAssignee().GetLogin(),
		Labels:    []string{},
	}
	for _, l := range gi.Labels {
		issue.Labels = append(issue.Labels, l.GetName())
	}
	return issue
}

func classify(item string, resp *github.Response, err error) error {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return stories.NewError(stories.NotFound, item, err)
	}
	return err
}
