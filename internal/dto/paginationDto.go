package dto

// DefaultPageSize is the page size used by every listing in the application.
const DefaultPageSize = 6

// APIMaxPageSize caps the client-supplied page_size on the read-only API.
const APIMaxPageSize = 20

func pageCount(total, pageSize int) int {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return totalPages
}
