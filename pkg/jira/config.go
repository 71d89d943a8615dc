package jira

import (
	"github.com/pkg/errors"
)

// DefaultJQL selects every issue in creation order.
const DefaultJQL = "ORDER BY created ASC"

type Config struct {
	JiraUrl      string `yaml:"url,omitempty" json:"url,omitempty"`
	JiraUsername string `yaml:"username,omitempty" json:"username,omitempty"`
	JiraToken    string `yaml:"token,omitempty" json:"token,omitempty"`
	// JQL selects the issues to read stories from, for example
	// "project = APP AND issuetype = Story ORDER BY created ASC".
	JQL string `yaml:"jql,omitempty" json:"jql,omitempty"`
}

func (c Config) Validate() error {
	if c.JiraUrl == "" {
		return errors.New("jira url must be set")
	}
	if c.JiraUsername == "" || c.JiraToken == "" {
		return errors.New("jira username and token must be set")
	}
	return nil
}

func (c Config) query() string {
	if c.JQL == "" {
		return DefaultJQL
	}
	return c.JQL
}
