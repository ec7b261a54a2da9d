package services

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// paginate нормализует параметры страницы и возвращает offset/limit
func paginate(page, size int) (int, int) {
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	if page < 0 {
		page = 0
	}
	return page * size, size
}
