package walker_test

import (
	"context"
	"fmt"
	"time"

	"github.com/naveego/storyreader/pkg/stories"
	"github.com/naveego/storyreader/pkg/util/multierr"
	. "github.com/naveego/storyreader/pkg/walker"
	. "github.com/onsi/ginkgo"
	table "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

func ids(ss []stories.Story) []string {
	out := []string{}
	for _, s := range ss {
		out = append(out, s.ID)
	}
	return out
}

var _ = Describe("Walker", func() {
	var (
		tree     *fakeTree
		failures multierr.Collector
		sut      *Walker
		ctx      context.Context
	)

	BeforeEach(func() {
		tree = newFakeTree()
		failures = multierr.New()
		sut = New(tree, logrus.NewEntry(logrus.New()), 3)
		ctx = context.Background()
	})

	table.DescribeTable("should skip a malformed file and keep its siblings", func(total, bad int, expected []string) {
		tree.mkdir("user-stories")
		for i := 1; i <= total; i++ {
			name := fmt.Sprintf("user-stories/us-%d.json", i)
			if i == bad {
				tree.addText(name, `{"id": "US-x", "title": `)
				continue
			}
			tree.addText(name, storyJSON(fmt.Sprintf("US-%d", i), "Story", ""))
		}

		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(actual)).To(Equal(expected))
		Expect(failures.Errors()).To(HaveLen(1))
		Expect(stories.KindOf(failures.Errors()[0])).To(Equal(stories.DecodeFailure))
	},
		table.Entry("five files, third malformed", 5, 3, []string{"US-1", "US-2", "US-4", "US-5"}),
		table.Entry("six files, first malformed", 6, 1, []string{"US-2", "US-3", "US-4", "US-5", "US-6"}),
		table.Entry("five files, last malformed", 5, 5, []string{"US-1", "US-2", "US-3", "US-4"}),
	)

	It("should only read files ending in lower case .json", func() {
		tree.mkdir("user-stories")
		tree.addText("user-stories/a.json", storyJSON("US-1", "A", ""))
		tree.addText("user-stories/B.JSON", storyJSON("US-2", "B", ""))
		tree.addText("user-stories/notes.md", "# notes")

		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(actual)).To(Equal([]string{"US-1"}))
		Expect(failures.Errors()).To(BeEmpty())
	})

	It("should return nothing and a NotFound error when the root is missing", func() {
		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(actual).To(BeEmpty())
		Expect(actual).ToNot(BeNil())
		Expect(stories.IsNotFound(err)).To(BeTrue())
	})

	It("should default the root", func() {
		tree.addText("user-stories/a.json", storyJSON("US-1", "A", "Core"))
		actual, err := sut.Walk(ctx, "", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(actual)).To(Equal([]string{"US-1"}))
	})

	It("should walk depth first in listing order", func() {
		tree.mkdir("user-stories")
		tree.addText("user-stories/a.json", storyJSON("A", "A", ""))
		tree.mkdir("user-stories/auth")
		tree.addText("user-stories/auth/b.json", storyJSON("B", "B", ""))
		tree.mkdir("user-stories/auth/sso")
		tree.addText("user-stories/auth/sso/c.json", storyJSON("C", "C", ""))
		tree.addText("user-stories/auth/d.json", storyJSON("D", "D", ""))
		tree.addText("user-stories/e.json", storyJSON("E", "E", ""))

		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(actual)).To(Equal([]string{"A", "B", "C", "D", "E"}))
	})

	It("should infer the epic from the parent directory but not the root", func() {
		tree.addText("user-stories/a.json", storyJSON("A", "A", ""))
		tree.addText("user-stories/auth/b.json", storyJSON("B", "B", ""))
		tree.addText("user-stories/auth/c.json", storyJSON("C", "C", "Explicit"))

		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(actual).To(HaveLen(3))
		Expect(actual[0].Epic).To(BeEmpty())
		Expect(actual[1].Epic).To(Equal("auth"))
		Expect(actual[2].Epic).To(Equal("Explicit"))
	})

	It("should decode base64 content with line breaks", func() {
		tree.addBase64("user-stories/a.json", storyJSON("US-1", "A fairly long title so the encoding wraps over several lines", ""))
		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(actual).To(HaveLen(1))
		Expect(actual[0].Title).To(Equal("A fairly long title so the encoding wraps over several lines"))
		Expect(actual[0].CreatedDate).To(Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)))
	})

	It("should use the raw text when base64 decoding fails", func() {
		tree.add("user-stories/a.json", FileContent{Content: storyJSON("US-1", "Raw", ""), Encoding: "base64"})
		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(actual)).To(Equal([]string{"US-1"}))
	})

	It("should strip a byte order mark", func() {
		tree.addText("user-stories/a.json", "\ufeff"+storyJSON("US-1", "Bom", ""))
		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(actual)).To(Equal([]string{"US-1"}))
	})

	It("should drop a story without an id", func() {
		tree.addText("user-stories/a.json", storyJSON("", "No id", ""))
		tree.addText("user-stories/b.json", storyJSON("US-2", "B", ""))
		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(actual)).To(Equal([]string{"US-2"}))
		Expect(stories.KindOf(failures.Errors()[0])).To(Equal(stories.DecodeFailure))
	})

	It("should ignore files that are not json", func() {
		tree.addText("user-stories/README.md", "# stories")
		tree.addText("user-stories/a.json", storyJSON("US-1", "A", ""))
		actual, _ := sut.Walk(ctx, "user-stories", failures)
		Expect(ids(actual)).To(Equal([]string{"US-1"}))
		Expect(tree.fetched).To(Equal([]string{"user-stories/a.json"}))
	})

	It("should skip a subtree that can't be listed", func() {
		tree.addText("user-stories/a.json", storyJSON("A", "A", ""))
		tree.addText("user-stories/broken/b.json", storyJSON("B", "B", ""))
		tree.addText("user-stories/c.json", storyJSON("C", "C", ""))
		tree.listErr["user-stories/broken"] = fmt.Errorf("server error")

		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(actual)).To(Equal([]string{"A", "C"}))
		Expect(failures.Errors()).To(HaveLen(1))
	})

	It("should record a failed fetch and continue", func() {
		tree.addText("user-stories/a.json", storyJSON("A", "A", ""))
		tree.addText("user-stories/b.json", storyJSON("B", "B", ""))
		tree.fetchErr["user-stories/a.json"] = fmt.Errorf("timeout")

		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids(actual)).To(Equal([]string{"B"}))
		f := stories.FailureFromError("", failures.Errors()[0])
		Expect(f.Item).To(Equal("user-stories/a.json"))
		Expect(f.Kind).To(Equal(stories.Unexpected))
	})

	It("should emit empty sequences", func() {
		tree.addText("user-stories/a.json", `{"id":"US-1","title":"Bare"}`)
		actual, err := sut.Walk(ctx, "user-stories", failures)
		Expect(err).ToNot(HaveOccurred())
		Expect(actual[0].Tags).To(Equal([]string{}))
		Expect(actual[0].AcceptanceCriteria).To(Equal([]string{}))
	})
})

var _ = Describe("DecodeStory", func() {
	It("should accept timestamps without a zone", func() {
		s, err := DecodeStory("a.json", `{"id":"US-1","createdDate":"2024-01-15T10:30:00","lastModified":"2024-01-16"}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.CreatedDate).To(Equal(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)))
		Expect(s.LastModified).To(Equal(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)))
	})

	It("should reject an unreadable timestamp", func() {
		_, err := DecodeStory("a.json", `{"id":"US-1","createdDate":"yesterday"}`)
		Expect(stories.KindOf(err)).To(Equal(stories.DecodeFailure))
	})
})
