package models

import (
	"net/url"
	"strconv"
)

// Page is one page of a listing. Search is kept so that links to other pages
// repeat the same filter.
type Page[T any] struct {
	Data        []T    `json:"data"`
	CurrentPage int    `json:"current_page"`
	PerPage     int    `json:"per_page"`
	Total       int64  `json:"total"`
	LastPage    int    `json:"last_page"`
	From        int    `json:"from"`
	To          int    `json:"to"`
	Search      string `json:"search,omitempty"`
	Links       *Links `json:"links,omitempty"`

	// Paginated is false when Data holds the whole, unpaginated result.
	Paginated bool `json:"-"`
}

type Links struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

func NewPage[T any](items []T, total int64, page, perPage int, search string) *Page[T] {
	if items == nil {
		items = []T{}
	}
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}
	p := &Page[T]{
		Data:        items,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
		Search:      search,
		Paginated:   true,
	}
	if len(items) > 0 {
		p.From = (page-1)*perPage + 1
		p.To = p.From + len(items) - 1
	}
	return p
}

// Unpaginated wraps a complete result set.
func Unpaginated[T any](items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	p := &Page[T]{
		Data:        items,
		CurrentPage: 1,
		PerPage:     len(items),
		Total:       int64(len(items)),
		LastPage:    1,
	}
	if len(items) > 0 {
		p.From = 1
		p.To = len(items)
	}
	return p
}

func (p *Page[T]) HasPrev() bool { return p.CurrentPage > 1 }

func (p *Page[T]) HasNext() bool { return p.CurrentPage < p.LastPage }

// URL builds the link to page n under path, preserving per_page and search.
func (p *Page[T]) URL(path string, n int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(n))
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return path + "?" + q.Encode()
}

// WithLinks fills Links for a paginated page rooted at path.
func (p *Page[T]) WithLinks(path string) *Page[T] {
	if !p.Paginated {
		return p
	}
	links := &Links{
		First: p.URL(path, 1),
		Last:  p.URL(path, p.LastPage),
	}
	if p.HasPrev() {
		prev := p.URL(path, p.CurrentPage-1)
		links.Prev = &prev
	}
	if p.HasNext() {
		next := p.URL(path, p.CurrentPage+1)
		links.Next = &next
	}
	p.Links = links
	return p
}
