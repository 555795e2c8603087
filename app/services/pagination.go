package services

const (
	DefaultPageLimit = 12
	MaxPageLimit     = 100
)

type PageInfo struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	HasMore     bool  `json:"hasMore"`
}

// Paginate derives page numbers from an offset window. limit must be > 0.
func Paginate(total int64, indexFrom, limit int) PageInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	currentPage := indexFrom/limit + 1
	return PageInfo{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		HasMore:     currentPage < totalPages,
	}
}
