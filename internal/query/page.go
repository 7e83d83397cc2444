package query

import (
	"net/url"
	"strconv"

	"github.com/Domenick1991/airport/internal/domain"
)

type PageConfig struct {
	DefaultSize int
	MaxSize     int
}

type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ParsePage reads ?page and ?page_size. page_size above the configured
// maximum is capped rather than rejected.
func ParsePage(values url.Values, cfg PageConfig) (Page, error) {
	p := Page{Number: 1, Size: cfg.DefaultSize}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, domain.NewValidationError("page", "invalid page")
		}
		p.Number = n
	}
	if raw := values.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, domain.NewValidationError("page_size", "must be a positive integer")
		}
		p.Size = n
	}
	if cfg.MaxSize > 0 && p.Size > cfg.MaxSize {
		p.Size = cfg.MaxSize
	}
	if p.Size < 1 {
		p.Size = 1
	}
	return p, nil
}

type Result[T any] struct {
	Count    int `json:"count"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Results  []T `json:"results"`
}

func NewResult[T any](items []T, count int, p Page) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Count: count, Page: p.Number, PageSize: p.Size, Results: items}
}
