// Package walker discovers story files in a repository content tree and
// decodes them into stories.
package walker

import (
	"context"
	"path"
	"strings"

	"github.com/naveego/storyreader/pkg/stories"
	"github.com/naveego/storyreader/pkg/util/multierr"
	"github.com/naveego/storyreader/pkg/util/worker"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRoot        = "user-stories"
	DefaultConcurrency = 4
)

type Walker struct {
	client      ContentClient
	log         *logrus.Entry
	concurrency int
}

func New(client ContentClient, log *logrus.Entry, concurrency int) *Walker {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Walker{
		client:      client,
		log:         log.WithField("cmp", "walker"),
		concurrency: concurrency,
	}
}

// Walk returns every story found under root, depth first, in the order the
// client lists each directory. Files that can't be fetched or decoded are
// logged, collected into failures and skipped. The returned error is set
// only when root itself could not be listed.
func (w *Walker) Walk(ctx context.Context, root string, failures multierr.Collector) ([]stories.Story, error) {
	root = strings.Trim(strings.TrimSpace(root), "/")
	if root == "" {
		root = DefaultRoot
	}

	entries, err := w.client.ListDirectory(ctx, root)
	if err != nil {
		if stories.IsNotFound(err) {
			w.log.WithField("path", root).Warn("Story directory not found.")
			return []stories.Story{}, stories.NewError(stories.NotFound, root, err)
		}
		w.log.WithField("path", root).WithError(err).Error("Could not list story directory.")
		return []stories.Story{}, stories.NewError(stories.KindOf(err), root, err)
	}

	acc := w.walk(ctx, entries, "", []stories.Story{}, failures)
	return acc, nil
}

// walk appends the stories found in entries to acc. parent is the name of
// the directory holding entries, empty for the walk root.
func (w *Walker) walk(ctx context.Context, entries []Entry, parent string, acc []stories.Story, failures multierr.Collector) []stories.Story {
	files := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isStoryFile(e.Name) {
			files = append(files, e)
		}
	}
	decoded := w.fetchAll(ctx, files, parent)

	next := 0
	for _, e := range entries {
		switch {
		case e.IsDir():
			log := w.log.WithField("path", e.Path)
			children, err := w.client.ListDirectory(ctx, e.Path)
			if err != nil {
				log.WithError(err).Warn("Could not list directory, skipping it.")
				failures.Collect(stories.NewError(kindOr(err, stories.Unexpected), e.Path, err))
				continue
			}
			acc = w.walk(ctx, children, e.Name, acc, failures)
		case isStoryFile(e.Name):
			r := decoded[next]
			next++
			if r.Err != nil {
				w.log.WithField("path", e.Path).WithError(r.Err).Warn("Skipping story file.")
				failures.Collect(asItemError(e.Path, r.Err))
				continue
			}
			acc = append(acc, r.Value.(stories.Story))
		default:
			w.log.WithField("path", e.Path).Debug("Ignoring non-story file.")
		}
	}
	return acc
}

// fetchAll fetches and decodes files concurrently. Results line up with files.
func (w *Walker) fetchAll(ctx context.Context, files []Entry, parent string) []worker.Result {
	return worker.Map(ctx, w.log, w.concurrency, len(files), func(ctx context.Context, i int) (interface{}, error) {
		return w.load(ctx, files[i], parent)
	})
}

func (w *Walker) load(ctx context.Context, file Entry, parent string) (stories.Story, error) {
	log := w.log.WithField("path", file.Path)

	fc, err := w.client.FetchFile(ctx, file.Path)
	if err != nil {
		return stories.Story{}, stories.NewError(kindOr(err, stories.Unexpected), file.Path, errors.Wrap(err, "fetch"))
	}

	text, decoded := Text(fc)
	if strings.EqualFold(fc.Encoding, EncodingBase64) && !decoded {
		log.Debug("Content was not valid base64, using it as text.")
	}

	story, err := DecodeStory(file.Path, text)
	if err != nil {
		return stories.Story{}, err
	}
	if strings.TrimSpace(story.Epic) == "" {
		story.Epic = parent
	}
	log.WithField("id", story.ID).Debug("Decoded story.")
	return story, nil
}

func isStoryFile(name string) bool {
	return path.Ext(name) == ".json"
}

// kindOr returns the kind carried by err, or fallback when err has none.
func kindOr(err error, fallback stories.ErrorKind) stories.ErrorKind {
	if _, ok := stories.AsError(err); ok {
		return stories.KindOf(err)
	}
	return fallback
}

func asItemError(item string, err error) error {
	if e, ok := stories.AsError(err); ok && e.Item != "" {
		return err
	}
	return stories.NewError(kindOr(err, stories.Unexpected), item, err)
}
