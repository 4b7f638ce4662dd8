// Package paginator slices an ordered collection into fixed-size pages.
//
// Out-of-range page numbers never fail: anything below the first page maps to
// the first page and anything past the last page maps to the last page. An
// empty collection still has one, empty, page.
package paginator

import "strconv"

const DefaultPageSize = 10

type Paginator struct {
	total    int
	pageSize int
}

func New(total, pageSize int) Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if total < 0 {
		total = 0
	}

	return Paginator{total: total, pageSize: pageSize}
}

func (p Paginator) NumPages() int {
	if p.total == 0 {
		return 1
	}

	return (p.total + p.pageSize - 1) / p.pageSize
}

// Page returns the page with the given number after clamping it into
// [1, NumPages].
func (p Paginator) Page(number int) Page {
	numPages := p.NumPages()
	if number < 1 {
		number = 1
	}

	if number > numPages {
		number = numPages
	}

	offset := (number - 1) * p.pageSize
	limit := p.pageSize
	if offset+limit > p.total {
		limit = p.total - offset
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		Total:    p.total,
		Offset:   offset,
		Limit:    limit,
	}
}

// ParseNumber converts the raw page query value. Values which are not an
// integer point to the first page.
func ParseNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}

	return n
}

type Page struct {
	Number   int
	NumPages int
	Total    int

	// Offset and Limit locate the page inside the whole collection.
	Offset int
	Limit  int
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) PreviousNumber() int {
	return p.Number - 1
}

func (p Page) NextNumber() int {
	return p.Number + 1
}

func (p Page) Range() []int {
	result := make([]int, 0, p.NumPages)
	for i := 1; i <= p.NumPages; i++ {
		result = append(result, i)
	}

	return result
}

// Slice returns the items of an in-memory collection which belong to page.
func Slice[T any](items []T, page Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}

	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}

	return items[page.Offset:end]
}
