package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterEventRoutes registers GET /events. A content store outage surfaces
// as an empty list, so the page renders its "check back soon" state.
func RegisterEventRoutes(r gin.IRoutes, store ContentStore) {
	r.GET("/events", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": store.ListEvents(c.Request.Context())})
	})
}

// RegisterBlogRoutes registers GET /blog and GET /blog/:id.
func RegisterBlogRoutes(r gin.IRoutes, store ContentStore) {
	r.GET("/blog", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": store.ListBlogPosts(c.Request.Context())})
	})

	r.GET("/blog/:id", func(c *gin.Context) {
		post, err := store.GetBlogPost(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "blog post not found"})
			return
		}
		c.JSON(http.StatusOK, post)
	})
}
