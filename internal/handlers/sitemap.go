package handlers

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []siteLink `xml:"url"`
}

type siteLink struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// RegisterSitemapRoutes registers GET /sitemap.xml: the static pages plus one
// entry per product and blog post, with product lastmod from the store's
// last-edited timestamp.
func RegisterSitemapRoutes(r gin.IRoutes, store ContentStore, siteURL string) {
	r.GET("/sitemap.xml", func(c *gin.Context) {
		set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
		for _, path := range []string{"/", "/products", "/events", "/blog", "/about"} {
			set.URLs = append(set.URLs, siteLink{Loc: siteURL + path})
		}
		ctx := c.Request.Context()
		for _, p := range store.ListProducts(ctx) {
			link := siteLink{Loc: siteURL + "/products/" + p.ID}
			if !p.LastEdited.IsZero() {
				link.LastMod = p.LastEdited.Format("2006-01-02")
			}
			set.URLs = append(set.URLs, link)
		}
		for _, post := range store.ListBlogPosts(ctx) {
			set.URLs = append(set.URLs, siteLink{Loc: siteURL + "/blog/" + post.ID})
		}

		body, err := xml.MarshalIndent(set, "", "  ")
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), body...))
	})
}
