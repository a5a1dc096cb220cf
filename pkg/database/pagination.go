package database

// Pagination describes one requested page of a list query
type Pagination struct {
	Page  int64
	Limit int64
}

// Normalize clamps page and limit to sane values (page >= 1, 1 <= limit <= 100)
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 50
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Skip returns the document offset for the page
func (p Pagination) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit) for the page size
func (p Pagination) TotalPages(total int64) int64 {
	if p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
