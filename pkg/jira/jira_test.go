package jira_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/naveego/storyreader/pkg/extract"
	. "github.com/naveego/storyreader/pkg/jira"
	"github.com/naveego/storyreader/pkg/stories"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

const page1 = `{"startAt":0,"maxResults":2,"total":3,"issues":[
	{"key":"APP-1","fields":{"summary":"[USER STORY] Sign up","description":"## Priority\nPriority: High\n\nEpic: Onboarding",
	 "status":{"name":"Done","statusCategory":{"key":"done"}},"assignee":{"displayName":"Alice Smith","name":"alice"},
	 "labels":["web"],"created":"2024-02-01T10:00:00.000+0000","updated":"2024-02-02T10:00:00.000+0000"}},
	{"key":"APP-2","fields":{"summary":"Profile page","status":{"name":"In Progress","statusCategory":{"key":"indeterminate"}},
	 "created":"2024-02-03T10:00:00.000+0000"}}
]}`

const page2 = `{"startAt":2,"maxResults":2,"total":3,"issues":[
	{"key":"APP-3","fields":{"summary":"Settings","status":{"name":"To Do","statusCategory":{"key":"new"}},
	 "created":"2024-02-04T10:00:00.000+0000"}}
]}`

var _ = Describe("Client", func() {
	var (
		mux    *http.ServeMux
		server *httptest.Server
		sut    *Client
		ctx    = context.Background()
		log    = logrus.NewEntry(logrus.New())
	)

	BeforeEach(func() {
		mux = http.NewServeMux()
		server = httptest.NewServer(mux)
		var err error
		sut, err = NewClient(Config{
			JiraUrl:      server.URL,
			JiraUsername: "bot@example.com",
			JiraToken:    "token",
			JQL:          "project = APP",
		}, 5*time.Second, log)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	It("should require credentials", func() {
		_, err := NewClient(Config{JiraUrl: server.URL}, 0, log)
		Expect(err).To(HaveOccurred())
	})

	It("should test connectivity with basic auth", func() {
		var user string
		mux.HandleFunc("/rest/api/2/myself", func(w http.ResponseWriter, r *http.Request) {
			user, _, _ = r.BasicAuth()
			fmt.Fprint(w, `{"displayName":"Story Bot"}`)
		})
		Expect(sut.TestConnectivity(ctx)).To(Succeed())
		Expect(user).To(Equal("bot@example.com"))
	})

	It("should page through search results", func() {
		var queries []string
		mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
			queries = append(queries, r.URL.Query().Get("jql"))
			if r.URL.Query().Get("startAt") == "2" {
				fmt.Fprint(w, page2)
				return
			}
			fmt.Fprint(w, page1)
		})

		list, err := sut.ListIssues(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(queries).To(Equal([]string{"project = APP", "project = APP"}))
		Expect(list).To(HaveLen(3))

		Expect(list[0].Key).To(Equal("APP-1"))
		Expect(list[0].IsClosed()).To(BeTrue())
		Expect(list[0].Assignee).To(Equal("Alice Smith"))
		Expect(list[0].Labels).To(Equal([]string{"web"}))
		Expect(list[0].UpdatedAt).ToNot(BeNil())

		Expect(list[1].IsClosed()).To(BeFalse())
		Expect(list[1].UpdatedAt).To(BeNil())
		Expect(list[1].Labels).To(Equal([]string{}))
	})

	It("should produce issues the extractor understands", func() {
		mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"startAt":0,"maxResults":50,"total":1,"issues":[
				{"key":"APP-1","fields":{"summary":"[USER STORY] Sign up","description":"## Priority\nPriority: High\n\nEpic: Onboarding",
				 "status":{"statusCategory":{"key":"done"}},"labels":["web"],"created":"2024-02-01T10:00:00.000+0000"}}]}`)
		})

		list, err := sut.ListIssues(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(list).To(HaveLen(1))
		story, err := extract.FromIssue(list[0])
		Expect(err).ToNot(HaveOccurred())
		Expect(story.ID).To(Equal("APP-1"))
		Expect(story.Title).To(Equal("Sign up"))
		Expect(story.Status).To(Equal(stories.StatusClosed))
		Expect(story.Priority).To(Equal("High"))
		Expect(story.Epic).To(Equal("Onboarding"))
		Expect(story.Tags).To(Equal([]string{"web"}))
		Expect(story.LastModified).To(Equal(story.CreatedDate))
	})
})
