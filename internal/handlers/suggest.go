package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veganmotoclub/catalog-api/internal/models"
	"github.com/veganmotoclub/catalog-api/internal/suggest"
)

// RegisterSuggestRoutes registers the one write endpoint.
//
// POST /suggest
//   - 200 {success:true} for real writes and silently dropped spam alike
//   - 400 {error} for missing/malformed URL
//   - 429 {error} when the client is over the submission limit
//   - 500 {error} when the content store write fails
func RegisterSuggestRoutes(r gin.IRoutes, gate *suggest.Gate) {
	r.POST("/suggest", func(c *gin.Context) {
		var req models.SuggestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		res := gate.Evaluate(c.Request.Context(), suggest.Submission{
			IP:        clientIP(c),
			URL:       req.URL,
			Honeypot:  req.Website,
			ElapsedMS: req.ElapsedMS,
		})

		switch res.Outcome {
		case suggest.Accepted, suggest.SilentAccept:
			c.JSON(http.StatusOK, models.SuggestResponse{Success: true})
		case suggest.RateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": res.Message})
		case suggest.Invalid:
			c.JSON(http.StatusBadRequest, gin.H{"error": res.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Message})
		}
	})
}

// clientIP derives the rate-limit key: first forwarded address, then the
// real-IP header, then "unknown" (all such clients share one bucket).
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}
