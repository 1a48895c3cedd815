package app

var pageSizeOptions = []int{10, 20, 50, 100, 250}

const defaultPageSize = 100

// pageBounds returns the half-open record range shown on page (zero based)
// for the given page size. The page is clamped to the last page.
func pageBounds(total, page, size int) (start, end int) {
	if total <= 0 {
		return 0, 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	last := pageCount(total, size) - 1
	if page > last {
		page = last
	}
	if page < 0 {
		page = 0
	}
	start = page * size
	end = start + size
	if end > total {
		end = total
	}
	return start, end
}

// pageCount returns how many pages of size records hold total records.
func pageCount(total, size int) int {
	if total <= 0 {
		return 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	return (total + size - 1) / size
}
