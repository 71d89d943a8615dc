package extract_test

import (
	"time"

	. "github.com/naveego/storyreader/pkg/extract"
	"github.com/naveego/storyreader/pkg/issues"
	"github.com/naveego/storyreader/pkg/stories"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parse", func() {
	It("should prefer the narrative over the description", func() {
		f := Parse(loginBody)
		Expect(f.Description).To(Equal("As a returning user, I want to log in, so that I can access my data"))
	})

	It("should fall back to the description section", func() {
		f := Parse("## Description\n  Plain prose.  \n")
		Expect(f.Description).To(Equal("Plain prose."))
	})

	It("should apply defaults to an empty body", func() {
		f := Parse("")
		Expect(f.Description).To(BeEmpty())
		Expect(f.AcceptanceCriteria).To(Equal([]string{}))
		Expect(f.EstimatedHours).To(Equal(0))
		Expect(f.Priority).To(Equal(stories.DefaultPriority))
		Expect(f.Epic).To(Equal(stories.UnassignedEpic))
		Expect(f.Tags).To(Equal([]string{}))
	})
})

var _ = Describe("FromIssue", func() {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	It("should build the login story", func() {
		for _, state := range []string{"open", "closed"} {
			story, err := FromIssue(issues.Issue{
				Number:    42,
				Title:     "[USER STORY] Add login",
				Body:      loginBody,
				State:     state,
				CreatedAt: created,
				UpdatedAt: &updated,
				Assignee:  "octocat",
				Labels:    []string{"user-story", "auth"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(story.ID).To(Equal("#42"))
			Expect(story.Title).To(Equal("Add login"))
			Expect(story.Description).To(Equal("As a returning user, I want to log in, so that I can access my data"))
			Expect(story.AcceptanceCriteria).To(HaveLen(2))
			Expect(story.EstimatedHours).To(Equal(5))
			Expect(story.Priority).To(Equal("High"))
			Expect(story.Epic).To(Equal("Authentication"))
			Expect(story.Assignee).To(Equal("octocat"))
			Expect(story.Tags).To(Equal([]string{"user-story", "auth"}))
			Expect(story.CreatedDate).To(Equal(created))
			Expect(story.LastModified).To(Equal(updated))
			if state == "closed" {
				Expect(story.Status).To(Equal("Closed"))
			} else {
				Expect(story.Status).To(Equal("Open"))
			}
		}
	})

	It("should prefer an explicit tag line over labels", func() {
		story, err := FromIssue(issues.Issue{Number: 1, Body: "Tags: a, b", Labels: []string{"x"}})
		Expect(err).ToNot(HaveOccurred())
		Expect(story.Tags).To(Equal([]string{"a", "b"}))
	})

	It("should fall back to the creation time when there is no update time", func() {
		story, err := FromIssue(issues.Issue{Number: 2, CreatedAt: created})
		Expect(err).ToNot(HaveOccurred())
		Expect(story.LastModified).To(Equal(created))
	})

	It("should default everything for an empty issue", func() {
		story, err := FromIssue(issues.Issue{Number: 3, State: "open"})
		Expect(err).ToNot(HaveOccurred())
		Expect(story.ID).To(Equal("#3"))
		Expect(story.Status).To(Equal("Open"))
		Expect(story.Priority).To(Equal("Medium"))
		Expect(story.Epic).To(Equal("Unassigned"))
		Expect(story.Tags).ToNot(BeNil())
		Expect(story.Tags).To(BeEmpty())
		Expect(story.AcceptanceCriteria).ToNot(BeNil())
	})

	It("should use the tracker key when present", func() {
		story, err := FromIssue(issues.Issue{Key: "AUTH-7", Title: "Reset password"})
		Expect(err).ToNot(HaveOccurred())
		Expect(story.ID).To(Equal("AUTH-7"))
	})
})
