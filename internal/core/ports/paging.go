package ports

// Page describes one page of a paged query. Numbers are zero-based.
type Page struct {
	Number int
	Size   int
}

// PageOf builds a Page, clamping a non-positive size to the default.
func PageOf(number, size int) Page {
	if number < 0 {
		number = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

// DefaultPageSize is used when a caller does not specify a page size.
const DefaultPageSize = 20

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return p.Number * p.Size
}

// Limit returns the maximum number of rows to return.
func (p Page) Limit() int {
	return p.Size
}
