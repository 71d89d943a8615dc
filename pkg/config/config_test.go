package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/naveego/storyreader/pkg/config"
	"github.com/naveego/storyreader/pkg/ingest"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var envKeys = []string{
	config.EnvGithubToken, config.EnvGithubOwner, config.EnvGithubRepository,
	config.EnvJiraURL, config.EnvJiraUsername, config.EnvJiraToken, config.EnvJiraJQL,
}

var _ = Describe("Config", func() {
	var (
		dir   string
		saved map[string]string
	)

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "config")
		Expect(err).ToNot(HaveOccurred())

		saved = map[string]string{}
		for _, k := range envKeys {
			if v, ok := os.LookupEnv(k); ok {
				saved[k] = v
			}
			os.Unsetenv(k)
		}
	})

	AfterEach(func() {
		os.RemoveAll(dir)
		for _, k := range envKeys {
			os.Unsetenv(k)
		}
		for k, v := range saved {
			os.Setenv(k, v)
		}
	})

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(ioutil.WriteFile(path, []byte(content), 0600)).To(Succeed())
		return path
	}

	It("should use defaults when there are no files", func() {
		c, err := config.Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, ".env"))
		Expect(err).ToNot(HaveOccurred())
		Expect(c.StoriesPath).To(Equal("user-stories"))
		Expect(c.Concurrency).To(Equal(4))
		Expect(c.Timeout).To(Equal(30 * time.Second))
		Expect(c.Tracker).To(Equal(config.TrackerGithub))
		Expect(c.FromPath).To(BeEmpty())
	})

	It("should read the yaml file", func() {
		path := write("storyreader.yaml", `
github:
  owner: acme
  repository: stories
  issueLabel: user-story
tracker: Jira
storiesPath: docs/stories
concurrency: 8
timeout: 10s
`)
		c, err := config.Load(path, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(c.FromPath).To(Equal(path))
		Expect(c.Github.Owner).To(Equal("acme"))
		Expect(c.Github.IssueLabel).To(Equal("user-story"))
		Expect(c.Tracker).To(Equal(config.TrackerJira))
		Expect(c.StoriesPath).To(Equal("docs/stories"))
		Expect(c.Concurrency).To(Equal(8))
		Expect(c.Timeout).To(Equal(10 * time.Second))
	})

	It("should let the env file and environment override the yaml file", func() {
		path := write("storyreader.yaml", "github:\n  owner: acme\n  repository: stories\n  token: from-file\n")
		envFile := write(".env", "GITHUB_TOKEN=from-env-file\nJIRA_JQL=project = APP\n")

		c, err := config.Load(path, envFile)
		Expect(err).ToNot(HaveOccurred())
		Expect(c.Github.Token).To(Equal("from-env-file"))
		Expect(c.Jira.JQL).To(Equal("project = APP"))
		Expect(c.Github.Owner).To(Equal("acme"))
	})

	It("should reject invalid yaml", func() {
		path := write("storyreader.yaml", "github: [\n")
		_, err := config.Load(path, "")
		Expect(err).To(HaveOccurred())
	})

	It("should split an owner/name repository", func() {
		c := config.Default()
		c.ApplyEnv(func(k string) (string, bool) {
			if k == config.EnvGithubRepository {
				return "acme/stories", true
			}
			return "", false
		})
		Expect(c.Github.Owner).To(Equal("acme"))
		Expect(c.Github.Repository).To(Equal("stories"))
	})

	Describe("Validate", func() {
		valid := func() config.Config {
			c := config.Default()
			c.Github.Token = "ghp_abcdefghijkl"
			c.Github.Owner = "acme"
			c.Github.Repository = "stories"
			return c
		}

		It("should accept a complete github config", func() {
			Expect(valid().Validate(ingest.SourceFiles)).To(Succeed())
			Expect(valid().Validate(ingest.SourceIssues)).To(Succeed())
		})

		It("should require a github token", func() {
			c := valid()
			c.Github.Token = ""
			Expect(c.Validate(ingest.SourceFiles)).To(MatchError(ContainSubstring("token not found")))
		})

		It("should require jira settings for jira issues only", func() {
			c := valid()
			c.Tracker = config.TrackerJira
			Expect(c.Validate(ingest.SourceFiles)).To(Succeed())
			Expect(c.Validate(ingest.SourceIssues)).ToNot(Succeed())

			c.Github.Token = ""
			c.Jira.JiraUrl = "https://acme.atlassian.net"
			c.Jira.JiraUsername = "bot"
			c.Jira.JiraToken = "token"
			Expect(c.Validate(ingest.SourceIssues)).To(Succeed())
		})

		It("should reject an unknown tracker", func() {
			c := valid()
			c.Tracker = "trello"
			Expect(c.Validate(ingest.SourceIssues)).ToNot(Succeed())
		})
	})

	It("should mask secrets", func() {
		c := config.Default()
		c.Github.Token = "ghp_abcdefghijkl"
		c.Jira.JiraToken = "short"
		m := c.Masked()
		Expect(m.Github.Token).To(Equal("ghp_************"))
		Expect(m.Jira.JiraToken).To(Equal("*****"))
		Expect(c.Github.Token).To(Equal("ghp_abcdefghijkl"))
	})
})
