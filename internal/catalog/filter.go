// Package catalog derives filtered, sorted, paginated views of the product
// list and the facet values available for filter controls. Every function is
// pure and total over any input, including empty lists.
package catalog

import (
	"sort"
	"strings"

	"github.com/veganmotoclub/catalog-api/internal/models"
)

// DefaultPageSize is the number of products per page when the caller does not
// choose one.
const DefaultPageSize = 24

// Criteria is the current filter state. Zero-valued fields impose no
// constraint. Fields combine with AND; values within Genders and RidingStyles
// combine with OR.
type Criteria struct {
	Search       string   `json:"search,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Category     string   `json:"category,omitempty"`
	Genders      []string `json:"genders,omitempty"`
	RidingStyles []string `json:"riding_styles,omitempty"`
}

// Filter returns the products matching c, sorted ascending by price. The sort
// is stable so tied prices keep their input order. The store's native
// most-recently-edited order is deliberately replaced to make browsing
// predictable.
func Filter(products []models.Product, c Criteria) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, c) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Price.LessThan(out[j].Price)
	})
	return out
}

func matches(p models.Product, c Criteria) bool {
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) {
			return false
		}
	}
	if c.Brand != "" && p.Brand != c.Brand {
		return false
	}
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	if len(c.Genders) > 0 {
		// The gender field may hold combined tags ("Men / Unisex"), so this
		// is a membership test, not an equality test.
		ok := false
		for _, g := range c.Genders {
			if g != "" && strings.Contains(p.Gender, g) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(c.RidingStyles) > 0 {
		ok := false
		for _, want := range c.RidingStyles {
			for _, have := range p.RidingStyle {
				if want == have {
					ok = true
					break
				}
			}
			if ok {
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// FacetSet holds the distinct values available for each filter control,
// lexicographically sorted with blanks removed.
type FacetSet struct {
	Brands       []string `json:"brands"`
	Categories   []string `json:"categories"`
	Genders      []string `json:"genders"`
	RidingStyles []string `json:"riding_styles"`
}

// Facets computes the facet values over the full product list.
func Facets(products []models.Product) FacetSet {
	brands := map[string]struct{}{}
	categories := map[string]struct{}{}
	genders := map[string]struct{}{}
	styles := map[string]struct{}{}
	for _, p := range products {
		if p.Brand != "" {
			brands[p.Brand] = struct{}{}
		}
		if p.Category != "" {
			categories[p.Category] = struct{}{}
		}
		if p.Gender != "" {
			genders[p.Gender] = struct{}{}
		}
		for _, s := range p.RidingStyle {
			if s != "" {
				styles[s] = struct{}{}
			}
		}
	}
	return FacetSet{
		Brands:       sortedKeys(brands),
		Categories:   sortedKeys(categories),
		Genders:      sortedKeys(genders),
		RidingStyles: sortedKeys(styles),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Paginate returns the 1-indexed page of the given size. Pages past the end
// of the list are a normal empty result, not an error.
func Paginate(list []models.Product, pageSize, page int) []models.Product {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return []models.Product{}
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}
