package dtos

// APIPagingDto carries pagination query parameters
type APIPagingDto struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	Sort      string `json:"sort"`
	Direction string `json:"direction"`
}

// PagingInfo describes the page returned alongside a list response
type PagingInfo struct {
	TotalCount  int64 `json:"total_count"`
	Count       int   `json:"count"`
	Page        int   `json:"page"`
	HasNextPage bool  `json:"has_next_page"`
}
