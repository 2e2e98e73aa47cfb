package directory

// Page описывает одну страницу выдачи каталога.
type Page[T any] struct {
	Items    []T  `json:"items"`    // элементы на текущей странице
	Page     int  `json:"page"`     // номер страницы (с 1)
	PageSize int  `json:"pageSize"` // количество элементов на странице
	HasNext  bool `json:"hasNext"`
	HasPrev  bool `json:"hasPrev"`
	Total    int  `json:"total"` // общее количество элементов
}

// Clamp нормализует номер страницы и размер страницы.
// При некорректных значениях используются дефолты.
func Clamp(page, pageSize int) (int, int) {
	const defaultPageSize = 20

	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return page, pageSize
}

// NewPage собирает метаданные страницы по уже обрезанной выборке items
// и общему количеству total, посчитанному на стороне базы.
func NewPage[T any](items []T, page, pageSize, total int) Page[T] {
	page, pageSize = Clamp(page, pageSize)

	end := (page-1)*pageSize + len(items)

	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		HasNext:  end < total,
		HasPrev:  page > 1,
		Total:    total,
	}
}
