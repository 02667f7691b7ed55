package dto

import (
	"strings"

	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/pkg/pagination"
)

// ListRequest carries ?search= and ?page= from every list view.
type ListRequest struct {
	Search string
	Page   int
}

// Filter converts the request into a repository filter for one page.
func (r ListRequest) Filter() entity.ListFilter {
	page := pagination.Normalize(r.Page)
	return entity.ListFilter{
		Search: strings.TrimSpace(r.Search),
		Limit:  pagination.DefaultPerPage,
		Offset: pagination.Offset(page, pagination.DefaultPerPage),
	}
}
