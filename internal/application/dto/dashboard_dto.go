package dto

import "time"

// DashboardStatsResponse contadores del dashboard.
type DashboardStatsResponse struct {
	TotalFlyers     int `json:"totalFlyers"`
	TotalClients    int `json:"totalClients"`
	TotalProducts   int `json:"totalProducts"`
	TotalTemplates  int `json:"totalTemplates"`
	RecentFlyers    int `json:"recentFlyers"` // creados en los últimos 7 días
	FlyersThisMonth int `json:"flyersThisMonth"`
}

// RecentFlyer encarte reciente para el dashboard.
type RecentFlyer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ClientName   *string   `json:"clientName"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RecentTemplate template reciente para el dashboard.
type RecentTemplate struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DashboardRecentResponse últimos encartes y templates modificados.
type DashboardRecentResponse struct {
	RecentFlyers    []RecentFlyer    `json:"recentFlyers"`
	RecentTemplates []RecentTemplate `json:"recentTemplates"`
}
