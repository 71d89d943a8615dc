// Package config loads the settings for a run from a yaml file, a .env
// file and the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/naveego/storyreader/pkg/git"
	"github.com/naveego/storyreader/pkg/ingest"
	"github.com/naveego/storyreader/pkg/issues"
	"github.com/naveego/storyreader/pkg/jira"
	"github.com/naveego/storyreader/pkg/walker"
	"github.com/naveego/storyreader/pkg/yaml"
	"github.com/pkg/errors"
)

const (
	DefaultFile    = "storyreader.yaml"
	DefaultTimeout = 30 * time.Second

	TrackerGithub = "github"
	TrackerJira   = "jira"
)

// Environment variables which override the file.
const (
	EnvGithubToken      = "GITHUB_TOKEN"
	EnvGithubOwner      = "GITHUB_OWNER"
	EnvGithubRepository = "GITHUB_REPOSITORY"
	EnvJiraURL          = "JIRA_URL"
	EnvJiraUsername     = "JIRA_USERNAME"
	EnvJiraToken        = "JIRA_TOKEN"
	EnvJiraJQL          = "JIRA_JQL"
)

type Config struct {
	Github      git.Config    `yaml:"github" json:"github"`
	Jira        jira.Config   `yaml:"jira,omitempty" json:"jira,omitempty"`
	Tracker     string        `yaml:"tracker" json:"tracker"`
	StoriesPath string        `yaml:"storiesPath" json:"storiesPath"`
	Source      string        `yaml:"source,omitempty" json:"source,omitempty"`
	Concurrency int           `yaml:"concurrency" json:"concurrency"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`

	FromPath string `yaml:"-" json:"-"`
}

func Default() Config {
	return Config{
		Tracker:     TrackerGithub,
		StoriesPath: walker.DefaultRoot,
		Source:      string(ingest.SourceFiles),
		Concurrency: walker.DefaultConcurrency,
		Timeout:     DefaultTimeout,
	}
}

// Load builds the configuration for a run. Values from the yaml file at
// path (which may be missing) are overridden by variables from envFile
// (also optional) and then by the process environment.
func Load(path, envFile string) (Config, error) {
	c := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return c, errors.Wrapf(err, "load env file %q", envFile)
		}
	}

	if path != "" {
		found, err := yaml.TryLoadYaml(path, &c)
		if err != nil {
			return c, err
		}
		if found {
			c.FromPath = path
		}
	}

	c.ApplyEnv(os.LookupEnv)
	c.applyDefaults()
	return c, nil
}

// ApplyEnv overrides fields with any environment variables lookup finds.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(target *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*target = v
		}
	}
	set(&c.Github.Token, EnvGithubToken)
	set(&c.Github.Owner, EnvGithubOwner)
	set(&c.Github.Repository, EnvGithubRepository)
	set(&c.Jira.JiraUrl, EnvJiraURL)
	set(&c.Jira.JiraUsername, EnvJiraUsername)
	set(&c.Jira.JiraToken, EnvJiraToken)
	set(&c.Jira.JQL, EnvJiraJQL)

	// GITHUB_REPOSITORY is owner/name when set by GitHub Actions.
	if ref, err := issues.ParseRepoRef(c.Github.Repository); err == nil {
		if c.Github.Owner == "" || c.Github.Owner == ref.Org {
			c.Github.Owner, c.Github.Repository = ref.OrgAndRepo()
		}
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Tracker == "" {
		c.Tracker = d.Tracker
	}
	c.Tracker = strings.ToLower(c.Tracker)
	if c.StoriesPath == "" {
		c.StoriesPath = d.StoriesPath
	}
	if c.Source == "" {
		c.Source = d.Source
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
}

// Validate checks that the clients needed to read from source can be built.
func (c Config) Validate(source ingest.Source) error {
	needGithub := source == ingest.SourceFiles || c.Tracker == TrackerGithub
	if needGithub {
		if c.Github.Token == "" {
			return errors.Errorf("GitHub token not found: set %s or github.token in the config file", EnvGithubToken)
		}
		if c.Github.Owner == "" || c.Github.Repository == "" {
			return errors.Errorf("GitHub repository not set: set %s and %s or github.owner and github.repository in the config file",
				EnvGithubOwner, EnvGithubRepository)
		}
	}

	switch c.Tracker {
	case TrackerGithub:
	case TrackerJira:
		if source == ingest.SourceIssues {
			if err := c.Jira.Validate(); err != nil {
				return err
			}
		}
	default:
		return errors.Errorf("unknown tracker %q (valid trackers are %q and %q)", c.Tracker, TrackerGithub, TrackerJira)
	}
	return nil
}

// Masked returns a copy of c which is safe to print.
func (c Config) Masked() Config {
	c.Github.Token = mask(c.Github.Token)
	c.Jira.JiraToken = mask(c.Jira.JiraToken)
	return c
}

func mask(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-4)
}
