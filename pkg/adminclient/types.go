package adminclient

import (
	"encoding/json"
	"time"
)

// Admin is the profile returned at login and by /api/admin/me.
type Admin struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Tokens is the pair issued at login and on every refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is the data payload of a successful login.
type LoginResult struct {
	Admin  Admin  `json:"admin"`
	Tokens Tokens `json:"tokens"`
}

// DashboardStats mirrors GET /api/admin/dashboard.
type DashboardStats struct {
	Blogs          int64 `json:"blogs"`
	Projects       int64 `json:"projects"`
	Clients        int64 `json:"clients"`
	HeroImages     int64 `json:"heroImages"`
	Enquiries      int64 `json:"enquiries"`
	NewEnquiries   int64 `json:"newEnquiries"`
	PublishedBlogs int64 `json:"publishedBlogs"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}
