package domain

// Content collections the public site renders from. The back office only
// counts them here; their CRUD lives outside this service.
const (
	CollectionBlogs      = "blogs"
	CollectionProjects   = "projects"
	CollectionClients    = "clients"
	CollectionHeroImages = "hero_images"
	CollectionEnquiries  = "enquiries"
)

// DashboardStats is the summary shown on the admin landing page.
type DashboardStats struct {
	Blogs          int64 `json:"blogs"`
	Projects       int64 `json:"projects"`
	Clients        int64 `json:"clients"`
	HeroImages     int64 `json:"heroImages"`
	Enquiries      int64 `json:"enquiries"`
	NewEnquiries   int64 `json:"newEnquiries"`
	PublishedBlogs int64 `json:"publishedBlogs"`
}
