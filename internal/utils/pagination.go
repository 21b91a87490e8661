package utils

import "strconv"

// DefaultPageSize размер страницы по умолчанию
const DefaultPageSize = 10

// Pagination метаданные страницы выдачи
type Pagination struct {
	TotalPages   int  `json:"total_pages"`
	CurrentPage  int  `json:"current_page"`
	PreviousPage int  `json:"previous_page"`
	NextPage     int  `json:"next_page"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
}

// ParsePage разбирает номер страницы из строки, по умолчанию 1
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Offset возвращает смещение для LIMIT/OFFSET
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}

// NewPagination считает метаданные по общему числу записей.
// Пустая выдача все равно имеет одну страницу.
func NewPagination(total, page, perPage int) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	p := Pagination{
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
	if p.HasNext {
		p.NextPage = page + 1
	}
	if p.HasPrevious {
		p.PreviousPage = page - 1
	}
	return p
}
