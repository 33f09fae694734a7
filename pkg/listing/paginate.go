package listing

// DefaultPageSize applies when a caller asks for a page size below 1
const DefaultPageSize = 6

// VisibleWindow is how many page numbers the pager shows at once
const VisibleWindow = 7

// Page is one slice of a filtered collection plus its navigation data
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	TotalItems int   `json:"totalItems"`
	Window     []int `json:"window"`
}

// TotalPages is ceil(n/size), never below 1
func TotalPages(n, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// ClampPage keeps a requested page inside [1, total]
func ClampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Paginate returns items [size*(page-1), size*page) after clamping page
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	total := TotalPages(len(items), size)
	page = ClampPage(page, total)

	start := size * (page - 1)
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	slice := make([]T, 0, end-start)
	if start < end {
		slice = append(slice, items[start:end]...)
	}

	return Page[T]{
		Items:      slice,
		Page:       page,
		PageSize:   size,
		TotalPages: total,
		TotalItems: len(items),
		Window:     PageWindow(page, total, VisibleWindow),
	}
}

// PageWindow lists the page numbers to show, centered on current and
// clamped to [1, total]
func PageWindow(current, total, visible int) []int {
	if total < 1 {
		total = 1
	}
	if visible < 1 {
		visible = VisibleWindow
	}
	current = ClampPage(current, total)

	if total <= visible {
		return pageRange(1, total)
	}

	start := current - visible/2
	if start < 1 {
		start = 1
	}
	end := start + visible - 1
	if end > total {
		end = total
		start = end - visible + 1
	}
	return pageRange(start, end)
}

func pageRange(from, to int) []int {
	pages := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	return pages
}

// ResetPage returns 1 when the active criteria changed since the client's last
// request, otherwise the requested page
func ResetPage(requested int, previousKey string, c Criteria) int {
	if previousKey != "" && previousKey != c.Fingerprint() {
		return 1
	}
	return requested
}
