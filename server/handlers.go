package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poiesic/solvent"
	"github.com/poiesic/solvent/match"
)

const (
	defaultMaxResults = 5
	maxResultsCap     = 10
)

// analyzeRequest is the body of POST /api/v1/analyze.
type analyzeRequest struct {
	// Description is the pain point to analyze, at least 10 characters.
	Description string `json:"description" binding:"required,min=10"`

	// MaxResults caps the recommendation count. Clamped to 1-10; 0 means the
	// default of 5.
	MaxResults int `json:"max_results"`

	// IncludeAnalysis attaches the aggregate summary. Defaults to true when
	// absent.
	IncludeAnalysis *bool `json:"include_analysis"`
}

// health reports catalog and embedding-cache state. The status degrades to
// "warning" when the catalog is empty, because every analyze call would
// return nothing.
func (s *Server) health(c *gin.Context) {
	stats := s.advisor.Stats()

	status := "healthy"
	message := "all systems operational"
	if stats.Entries == 0 {
		status = "warning"
		message = "running with an empty catalog"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          status,
		"version":         stats.Version,
		"message":         message,
		"features_loaded": stats.Entries,
		"cached_vectors":  stats.CachedVectors,
		"semantic_ready":  stats.SemanticReady,
		"cache_stale":     s.advisor.CacheStale(),
	})
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	includeAnalysis := true
	if req.IncludeAnalysis != nil {
		includeAnalysis = *req.IncludeAnalysis
	}

	analysis, err := s.advisor.Analyze(c.Request.Context(), req.Description, &solvent.AnalyzeOptions{
		MaxResults:      maxResults,
		IncludeAnalysis: includeAnalysis,
	})
	if err != nil {
		if errors.Is(err, match.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "pain point description cannot be empty"})
			return
		}
		s.logger.Error("analysis failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (s *Server) feature(c *gin.Context) {
	id := c.Param("id")

	entry, err := s.advisor.Entry(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"detail": fmt.Sprintf("Feature with ID '%s' not found", id),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feature": entry,
		"status":  "success",
	})
}

func (s *Server) categories(c *gin.Context) {
	summaries := s.advisor.Categories()

	c.JSON(http.StatusOK, gin.H{
		"categories":       summaries,
		"total_categories": len(summaries),
	})
}

// categoryFeatures returns the entries of one category. An unknown category
// is an empty list rather than a 404, so clients can probe names freely.
func (s *Server) categoryFeatures(c *gin.Context) {
	name := c.Param("name")
	entries := s.advisor.EntriesByCategory(name)

	c.JSON(http.StatusOK, gin.H{
		"category":       name,
		"features":       entries,
		"total_features": len(entries),
		"status":         "success",
	})
}

// exampleQuery is one canned pain point served by GET /api/v1/examples for
// interactive exploration.
type exampleQuery struct {
	PainPoint         string `json:"pain_point"`
	SuggestedSolution string `json:"suggested_solution"`
	HowItHelps        string `json:"how_it_helps"`
}

var exampleQueries = []exampleQuery{
	{
		PainPoint:         "We're struggling to collect customer feedback consistently after a purchase.",
		SuggestedSolution: "Automated Post-Purchase Surveys (Voice of Customer - Surveys)",
		HowItHelps:        "Trigger surveys automatically via email/SMS after a transaction",
	},
	{
		PainPoint:         "Our support agents are overwhelmed by the high volume of repetitive questions.",
		SuggestedSolution: "AI Agent for FAQ & First Response (AI Customer Service - AI Inbox)",
		HowItHelps:        "Deflects common queries and provides instant answers, freeing up human agents",
	},
	{
		PainPoint:         "We have no clear idea which customer touchpoints are causing the most frustration.",
		SuggestedSolution: "Customer Journey Experience Analysis (Insights - Experience)",
		HowItHelps:        "Identifies friction points by analyzing feedback and operational data across the journey",
	},
	{
		PainPoint:         "It's difficult to get a single view of a customer's interaction history when they contact us.",
		SuggestedSolution: "Customer Profile with Interaction History (Customer 360 - Customers & AI Inbox)",
		HowItHelps:        "Consolidates all touchpoints and past interactions for a comprehensive view",
	},
	{
		PainPoint:         "Manually analyzing thousands of open-ended survey responses for common themes is too time-consuming.",
		SuggestedSolution: "AI-Powered Topic & Sentiment Analysis (Voice of Customer - Conversations/Surveys, Insights - Experience)",
		HowItHelps:        "Automatically extracts key topics and sentiment from text feedback",
	},
}

func (s *Server) examples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"examples":       exampleQueries,
		"total_examples": len(exampleQueries),
		"status":         "success",
	})
}
