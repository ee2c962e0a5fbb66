package service

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// normalizePage clamps page/limit to sane values: page >= 1, 1 <= limit <= 100.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// totalPages is ceil(total/limit).
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
