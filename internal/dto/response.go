package dto

// TimeLayout is used for every timestamp rendered in a response.
const TimeLayout = "2006-01-02T15:04:05Z07:00"

// DateLayout is the calendar date format accepted and rendered by the API.
const DateLayout = "2006-01-02"

// ── pagination ──

// PaginationRequest common paging query parameters
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=200"`
}

func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 50
	}
	return p.PageSize
}

func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
