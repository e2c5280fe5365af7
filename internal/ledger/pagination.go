package ledger

import (
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageOptions selects one page of a list.
type PageOptions struct {
	Page     int `form:"page" json:"page" example:"1"`
	PageSize int `form:"limit" json:"pageSize" example:"10"`
}

func (o PageOptions) normalize() (PageOptions, error) {
	if o.Page < 0 || o.PageSize < 0 {
		return o, validationError("page and page size must not be negative")
	}

	if o.Page == 0 {
		o.Page = 1
	}

	if o.PageSize == 0 {
		o.PageSize = defaultPageSize
	}

	if o.PageSize > maxPageSize {
		return o, validationError("the page size must not be larger than %d", maxPageSize)
	}

	return o, nil
}

// Page is one page of a list together with the information needed to fetch the others.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total" example:"42"`
	Page       int   `json:"page" example:"1"`
	PageSize   int   `json:"pageSize" example:"10"`
	TotalPages int   `json:"totalPages" example:"5"`
}

// paginate counts all records matching q and loads the requested page into the result.
func paginate[T any](q *gorm.DB, opts PageOptions) (Page[T], error) {
	opts, err := opts.normalize()
	if err != nil {
		return Page[T]{}, err
	}

	page := Page[T]{
		Data:     []T{},
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}

	err = q.Session(&gorm.Session{}).Model(new(T)).Count(&page.Total).Error
	if err != nil {
		return page, err
	}

	err = q.Offset((opts.Page - 1) * opts.PageSize).Limit(opts.PageSize).Find(&page.Data).Error
	if err != nil {
		return page, err
	}

	page.TotalPages = int((page.Total + int64(opts.PageSize) - 1) / int64(opts.PageSize))
	return page, nil
}
