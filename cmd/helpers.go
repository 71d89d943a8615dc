package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/naveego/storyreader/pkg"
	"github.com/naveego/storyreader/pkg/config"
	"github.com/naveego/storyreader/pkg/git"
	"github.com/naveego/storyreader/pkg/ingest"
	"github.com/naveego/storyreader/pkg/issues"
	"github.com/naveego/storyreader/pkg/jira"
	"github.com/naveego/storyreader/pkg/stories"
	"github.com/naveego/storyreader/pkg/util"
	"github.com/naveego/storyreader/pkg/walker"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// loadConfig reads the config file and environment, then applies any
// global flags which were set.
func loadConfig() (config.Config, error) {
	c, err := config.Load(viper.GetString(ArgGlobalConfigFile), viper.GetString(ArgGlobalEnvFile))
	if err != nil {
		return c, util.CheckHandle(err, "Could not load configuration.")
	}

	if v := viper.GetString(ArgGlobalSource); v != "" {
		c.Source = v
	}
	if v := viper.GetString(ArgGlobalPath); v != "" {
		c.StoriesPath = v
	}
	if v := viper.GetString(ArgGlobalTracker); v != "" {
		c.Tracker = strings.ToLower(v)
	}
	if v := viper.GetInt(ArgGlobalConcurrency); v > 0 {
		c.Concurrency = v
	}
	if v := viper.GetDuration(ArgGlobalTimeout); v > 0 {
		c.Timeout = v
	}
	return c, nil
}

// session is everything a command needs to load stories.
type session struct {
	config   config.Config
	source   ingest.Source
	ingester *ingest.Ingester
}

func newSession() (*session, error) {
	c, err := loadConfig()
	if err != nil {
		return nil, err
	}

	source, err := ingest.ParseSource(c.Source)
	if err != nil {
		return nil, err
	}

	if err = c.Validate(source); err != nil {
		return nil, util.CheckHandle(err, "Configuration is incomplete.")
	}

	log := pkg.Log

	var content walker.ContentClient
	var tracker issues.Tracker

	var gh *git.Client
	if c.Github.Token != "" && c.Github.Owner != "" && c.Github.Repository != "" {
		if gh, err = git.NewClient(c.Github, c.Timeout, log); err != nil {
			return nil, err
		}
		content = gh
	}

	switch c.Tracker {
	case config.TrackerJira:
		if source == ingest.SourceIssues {
			if tracker, err = jira.NewClient(c.Jira, c.Timeout, log); err != nil {
				return nil, err
			}
		}
	default:
		if gh != nil {
			tracker = gh
		}
	}

	return &session{
		config:   c,
		source:   source,
		ingester: ingest.New(content, tracker, log, c.Concurrency),
	}, nil
}

// load checks connectivity and runs one ingestion. A connectivity failure
// aborts; failures of single items are reported as warnings.
func (s *session) load(ctx context.Context) (ingest.Result, error) {
	if err := s.ingester.CheckConnectivity(ctx, s.source); err != nil {
		return ingest.Result{}, util.CheckHandle(err, "Could not connect to %s.", s.remoteName())
	}

	result, err := s.ingester.Ingest(ctx, s.source, s.config.StoriesPath)
	if err != nil {
		return result, err
	}

	report := result.Report
	for _, f := range report.Failures {
		colorWarn.Fprintf(os.Stderr, "Skipped %s (%s): %s\n", f.Item, f.Kind, f.Err)
	}
	if report.Err != nil && stories.KindOf(report.Err) != stories.NotFound {
		return result, util.CheckHandle(report.Err, "Could not read stories.")
	}
	if len(result.Stories) == 0 {
		colorWarn.Fprintln(os.Stderr, s.emptyHint())
	}
	return result, nil
}

func (s *session) remoteName() string {
	if s.source == ingest.SourceIssues && s.config.Tracker == config.TrackerJira {
		return "Jira at " + s.config.Jira.JiraUrl
	}
	return "GitHub repository " + s.config.Github.Repo().String()
}

func (s *session) emptyHint() string {
	if s.source == ingest.SourceIssues {
		if s.config.Github.IssueLabel != "" && s.config.Tracker == config.TrackerGithub {
			return "No user stories found. Make sure your issues carry the " + s.config.Github.IssueLabel + " label."
		}
		return "No user stories found. Make sure your issues use the user story template."
	}
	return "No user stories found. Make sure the " + s.config.StoriesPath + " directory exists and contains JSON files."
}

// loadStories is the common start of every command which reads stories.
func loadStories() (stories.Stories, error) {
	s, err := newSession()
	if err != nil {
		return nil, err
	}
	ctx, cancel := signalContext()
	defer cancel()

	result, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return result.Stories, nil
}

// signalContext is cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		select {
		case <-ch:
			pkg.Log.Warn("Interrupted.")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()
	return ctx, cancel
}

var errNoSuchStory = errors.New("no such story")
