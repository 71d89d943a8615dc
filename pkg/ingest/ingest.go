// Package ingest is the single entry point for loading stories from either
// the story files in a repository or the issues of a tracker.
package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/naveego/storyreader/pkg/extract"
	"github.com/naveego/storyreader/pkg/issues"
	"github.com/naveego/storyreader/pkg/stories"
	"github.com/naveego/storyreader/pkg/util/multierr"
	"github.com/naveego/storyreader/pkg/walker"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

type Source string

const (
	SourceFiles  Source = "files"
	SourceIssues Source = "issues"
)

// ParseSource accepts the source names used on the command line.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "files", "file", "json":
		return SourceFiles, nil
	case "issues", "issue":
		return SourceIssues, nil
	}
	return "", errors.Errorf("unknown source %q (valid sources are %q and %q)", s, SourceFiles, SourceIssues)
}

// Report describes what went wrong during one ingestion run.
type Report struct {
	RunID    string            `json:"run" yaml:"run"`
	Source   Source            `json:"source" yaml:"source"`
	Failures []stories.Failure `json:"failures" yaml:"failures"`
	Err      error             `json:"-" yaml:"-"`
	Duration time.Duration     `json:"duration" yaml:"duration"`
}

// Empty is true when nothing went wrong, so a run with no stories and an
// empty report really found nothing.
func (r Report) Empty() bool {
	return r.Err == nil && len(r.Failures) == 0
}

type Result struct {
	Stories stories.Stories
	Report  Report
}

type Ingester struct {
	content     walker.ContentClient
	tracker     issues.Tracker
	log         *logrus.Entry
	concurrency int
}

// New creates an Ingester. Either client may be nil if the matching source
// is never used.
func New(content walker.ContentClient, tracker issues.Tracker, log *logrus.Entry, concurrency int) *Ingester {
	return &Ingester{
		content:     content,
		tracker:     tracker,
		log:         log.WithField("cmp", "ingest"),
		concurrency: concurrency,
	}
}

func (i *Ingester) Ingest(ctx context.Context, source Source, root string) (Result, error) {
	switch source {
	case SourceFiles:
		return i.IngestFromFiles(ctx, root)
	case SourceIssues:
		return i.IngestFromIssues(ctx)
	}
	return Result{}, errors.Errorf("unknown source %q", source)
}

// CheckConnectivity verifies that the client for source can reach its
// remote. Any failure is a ConnectivityFailure.
func (i *Ingester) CheckConnectivity(ctx context.Context, source Source) error {
	var err error
	switch source {
	case SourceFiles:
		if i.content == nil {
			return errors.New("no content client configured")
		}
		err = i.content.TestConnectivity(ctx)
	case SourceIssues:
		if i.tracker == nil {
			return errors.New("no issue tracker configured")
		}
		err = i.tracker.TestConnectivity(ctx)
	default:
		return errors.Errorf("unknown source %q", source)
	}
	if err != nil {
		return stories.NewError(stories.ConnectivityFailure, string(source), err)
	}
	return nil
}

// IngestFromFiles walks the story files under root. The returned error is
// only for misuse; a missing root is reported in Result.Report.Err.
func (i *Ingester) IngestFromFiles(ctx context.Context, root string) (Result, error) {
	if i.content == nil {
		return Result{}, errors.New("no content client configured")
	}
	run := i.begin(SourceFiles)
	log := run.log.WithField("path", root)
	log.Info("Reading stories from files.")

	failures := multierr.New()
	found, err := walker.New(i.content, run.log, i.concurrency).Walk(ctx, root, failures)

	return run.finish(found, failures, err), nil
}

// IngestFromIssues lists every issue from the tracker and extracts a story
// from each. An issue that can't be parsed is skipped.
func (i *Ingester) IngestFromIssues(ctx context.Context) (Result, error) {
	if i.tracker == nil {
		return Result{}, errors.New("no issue tracker configured")
	}
	run := i.begin(SourceIssues)
	run.log.Info("Reading stories from issues.")

	failures := multierr.New()
	list, err := i.tracker.ListIssues(ctx)
	if err != nil {
		run.log.WithError(err).Error("Could not list issues.")
		kind := stories.KindOf(err)
		if _, ok := stories.AsError(err); !ok {
			kind = stories.ConnectivityFailure
		}
		return run.finish(nil, failures, stories.NewError(kind, "issues", err)), nil
	}

	found := make([]stories.Story, 0, len(list))
	for _, issue := range list {
		log := run.log.WithField("issue", issue.Ref())
		story, err := extract.FromIssue(issue)
		if err != nil {
			log.WithError(err).Warn("Skipping issue.")
			failures.Collect(err)
			continue
		}
		log.Debug("Extracted story.")
		found = append(found, story)
	}

	return run.finish(found, failures, nil), nil
}

type ingestRun struct {
	id      string
	source  Source
	started time.Time
	log     *logrus.Entry
}

func (i *Ingester) begin(source Source) ingestRun {
	id := xid.New().String()
	return ingestRun{
		id:      id,
		source:  source,
		started: time.Now(),
		log:     i.log.WithField("run", id).WithField("source", source),
	}
}

func (r ingestRun) finish(found []stories.Story, failures multierr.Collector, err error) Result {
	out := make(stories.Stories, 0, len(found))
	for _, s := range found {
		out = append(out, s.Normalized())
	}

	report := Report{
		RunID:    r.id,
		Source:   r.source,
		Failures: []stories.Failure{},
		Err:      err,
		Duration: time.Since(r.started),
	}
	for _, f := range failures.Errors() {
		report.Failures = append(report.Failures, stories.FailureFromError("", f))
	}

	r.log.WithField("stories", len(out)).
		WithField("failures", len(report.Failures)).
		WithField("elapsed", report.Duration).
		Info("Ingestion complete.")

	return Result{Stories: out, Report: report}
}
