package domain

type ListOptions struct {
	Page       int
	Limit      int
	Search     string
	IsPaginate bool
}

type ListMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

type ListResult[T any] struct {
	Data []T       `json:"data"`
	Meta *ListMeta `json:"meta,omitempty"`
}

func CalculateMeta(total int64, page, limit int) *ListMeta {
	lastPage := 1
	if limit > 0 && total > 0 {
		lastPage = int((total + int64(limit) - 1) / int64(limit))
	}

	return &ListMeta{
		CurrentPage: page,
		PerPage:     limit,
		Total:       total,
		LastPage:    lastPage,
	}
}
