package git

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v20/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// NewGithubClient gets a github client. If token == "" the client will not be authenticated.
func NewGithubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(http.DefaultClient)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	return client
}

// withBaseURL points client at a GitHub Enterprise or test server.
func withBaseURL(client *github.Client, baseURL string) (*github.Client, error) {
	if baseURL == "" {
		return client, nil
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parse github base url %q", baseURL)
	}
	client.BaseURL = u
	return client, nil
}
