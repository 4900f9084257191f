package utils

// Paginate splits items into consecutive pages of at most pageSize elements
// each. The last page may be shorter. A non-positive pageSize or empty
// items yields no pages.
func Paginate[T any](items []T, pageSize int) [][]T {
	if pageSize <= 0 || len(items) == 0 {
		return nil
	}
	pages := make([][]T, 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages
}
