package models

// Event is a community event from the content database.
// EndDate equals StartDate for single-day events.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Price       string `json:"price"`
}

// BlogPost is a blog entry from the content database.
type BlogPost struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	PublishDate   string `json:"publish_date"`
	FeaturedImage string `json:"featured_image"`
}
