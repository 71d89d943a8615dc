package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naveego/storyreader/pkg/query"
	"github.com/naveego/storyreader/pkg/stories"
	"github.com/pkg/errors"
)

var errRefreshUnsupported = errors.New("refresh is not available")

type errorResponse struct {
	Error string `json:"error"`
}

type epicSummary struct {
	Epic    string          `json:"epic"`
	Count   int             `json:"count"`
	Stories stories.Stories `json:"stories"`
}

func (s *Server) handleHealth(c *gin.Context) {
	result, loadedAt := s.snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"stories":  len(result.Stories),
		"loadedAt": loadedAt,
	})
}

// handleListStories applies the status, priority and assignee query
// parameters as exact matches, q as a keyword search and each where
// parameter as a filter expression.
func (s *Server) handleListStories(c *gin.Context) {
	result, _ := s.snapshot()
	out := result.Stories

	var err error
	for _, field := range query.FilterableFields {
		if value, ok := c.GetQuery(field); ok {
			if out, err = query.FilterByField(out, field, value); err != nil {
				c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
				return
			}
		}
	}
	if q, ok := c.GetQuery("q"); ok {
		out = query.Search(out, q)
	}
	if where := c.QueryArray("where"); len(where) > 0 {
		if out, err = query.Where(out, where...); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
			return
		}
	}
	if out == nil {
		out = stories.Stories{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetStory(c *gin.Context) {
	result, _ := s.snapshot()
	story, ok := query.FindByID(result.Stories, c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{"no story with id " + c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, story)
}

func (s *Server) handleListEpics(c *gin.Context) {
	result, _ := s.snapshot()
	groups := query.GroupByEpic(result.Stories)
	out := make([]epicSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, epicSummary{Epic: g.Epic, Count: len(g.Stories), Stories: g.Stories})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleReport(c *gin.Context) {
	result, _ := s.snapshot()
	report := gin.H{
		"run":      result.Report.RunID,
		"source":   result.Report.Source,
		"failures": result.Report.Failures,
	}
	if result.Report.Err != nil {
		report["error"] = result.Report.Err.Error()
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleRefresh(c *gin.Context) {
	result, err := s.Refresh(c.Request.Context())
	switch {
	case err == errRefreshUnsupported:
		c.JSON(http.StatusNotImplemented, errorResponse{err.Error()})
	case err != nil:
		s.log.WithError(err).Error("Refresh failed.")
		c.JSON(http.StatusBadGateway, errorResponse{err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"run": result.Report.RunID, "stories": len(result.Stories)})
	}
}
