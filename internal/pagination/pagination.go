// Package pagination slices ordered result sets into numbered pages.
package pagination

import "strconv"

// Page describes one page of a result set. Page numbers start at 1.
type Page struct {
	Number   int
	Size     int
	Total    int64
	NumPages int
	// Exists is false when Number has no corresponding items. Page 1 of an
	// empty collection exists.
	Exists bool
}

// Paginate computes the page layout for total items.
func Paginate(total int64, size, number int) Page {
	if size < 1 {
		size = 1
	}
	p := Page{Number: number, Size: size, Total: total}

	p.NumPages = int((total + int64(size) - 1) / int64(size))
	if p.NumPages == 0 {
		// an empty collection still has one (empty) page
		p.NumPages = 1
	}
	p.Exists = number >= 1 && number <= p.NumPages
	return p
}

// Offset is the index of the first item on the page.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

// Len is the number of items that belong to the page.
func (p Page) Len() int {
	if !p.Exists {
		return 0
	}
	remaining := p.Total - int64(p.Offset())
	if remaining > int64(p.Size) {
		return p.Size
	}
	return int(remaining)
}

func (p Page) HasNext() bool {
	return p.Exists && p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Exists && p.Number > 1
}

func (p Page) NextNumber() int {
	return p.Number + 1
}

func (p Page) PreviousNumber() int {
	return p.Number - 1
}

// Numbers lists every page number, for rendering page links.
func (p Page) Numbers() []int {
	nums := make([]int, p.NumPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// ParseNumber reads a page number from a query value. Missing or malformed
// values fall back to page 1; numeric values are returned unchanged so that
// out-of-range pages can be reported as such.
func ParseNumber(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}
