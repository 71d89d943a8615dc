package ingest_test

import (
	"context"

	"github.com/naveego/storyreader/pkg/issues"
	"github.com/naveego/storyreader/pkg/stories"
	"github.com/naveego/storyreader/pkg/walker"
)

type fakeTracker struct {
	issues  []issues.Issue
	listErr error
	pingErr error
}

func (f fakeTracker) ListIssues(ctx context.Context) ([]issues.Issue, error) {
	return f.issues, f.listErr
}

func (f fakeTracker) TestConnectivity(ctx context.Context) error { return f.pingErr }

// fakeContent serves a single flat directory.
type fakeContent struct {
	root  string
	files map[string]string
	order []string
}

func (f *fakeContent) add(name, text string) *fakeContent {
	if f.files == nil {
		f.files = map[string]string{}
	}
	f.files[name] = text
	f.order = append(f.order, name)
	return f
}

func (f *fakeContent) ListDirectory(ctx context.Context, path string) ([]walker.Entry, error) {
	if path != f.root {
		return nil, stories.Errorf(stories.NotFound, path, "404 Not Found")
	}
	var out []walker.Entry
	for _, name := range f.order {
		out = append(out, walker.Entry{Name: name, Path: f.root + "/" + name, Type: walker.EntryFile})
	}
	return out, nil
}

func (f *fakeContent) FetchFile(ctx context.Context, path string) (walker.FileContent, error) {
	return walker.FileContent{Content: f.files[path[len(f.root)+1:]]}, nil
}

func (f *fakeContent) TestConnectivity(ctx context.Context) error { return nil }
