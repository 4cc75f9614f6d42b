package core

import "context"

const (
	// DefaultPage is used when the requested page is missing or below 1.
	DefaultPage = 1

	// DefaultPageSize is used when the requested limit is missing or below 1.
	DefaultPageSize = 20
)

// Page is the envelope returned by a paginated list call.
type Page struct {
	Records      []Row `json:"records"`
	TotalRecords int64 `json:"totalRecords"`
	RecordCount  int   `json:"recordCount"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	PageSize     int   `json:"pageSize"`
}

// Pager runs a count query and a bounded-window fetch for a plan.
type Pager struct {
	gw          Gateway
	defaultSize int
}

// NewPager creates a Pager. A non-positive defaultSize falls back to DefaultPageSize.
func NewPager(gw Gateway, defaultSize int) *Pager {
	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	return &Pager{gw: gw, defaultSize: defaultSize}
}

// Normalize clamps page and limit to their defaults when below 1.
func (p *Pager) Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = p.defaultSize
	}
	return page, limit
}

// TotalPages returns ceil(total/limit), or 0 when total is 0.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit < 1 {
		return 0
	}
	return int((total-1)/int64(limit) + 1)
}

// Paginate counts the rows matching the plan's predicate, then fetches the
// requested window. A page past the end yields an empty record list.
// Gateway failures are returned as *QueryError without retry.
func (p *Pager) Paginate(ctx context.Context, plan QueryPlan, page, limit int) (*Page, error) {
	page, limit = p.Normalize(page, limit)

	total, err := p.gw.Count(ctx, plan.Table, plan.Where)
	if err != nil {
		return nil, queryErr("count", err)
	}

	records := []Row{}
	if offset, ok := windowOffset(page, limit, total); ok {
		rows, err := p.gw.Select(ctx, plan.WithWindow(limit, offset))
		if err != nil {
			return nil, queryErr("select", err)
		}
		if rows != nil {
			records = rows
		}
	}

	return &Page{
		Records:      records,
		TotalRecords: total,
		RecordCount:  len(records),
		TotalPages:   TotalPages(total, limit),
		CurrentPage:  page,
		PageSize:     limit,
	}, nil
}

// windowOffset returns the row offset of page and whether it falls inside
// total. Pages beyond TotalPages never reach the multiplication, so the
// offset cannot overflow.
func windowOffset(page, limit int, total int64) (int, bool) {
	if page > TotalPages(total, limit) {
		return 0, false
	}
	return (page - 1) * limit, true
}
