package engine

import "reportview/internal/model"

// paginate derives totalPages, clamps the current page, and rebuilds the
// visibility flags. It is the only writer of visible: centralizing the
// show/hide side effect here keeps the other stages pure.
func (v *View) paginate() {
	n := len(v.filtered)
	v.totalPages = (n + v.Page.Size - 1) / v.Page.Size
	if v.totalPages < 1 {
		v.totalPages = 1
	}
	if v.Page.Page > v.totalPages {
		v.Page.Page = v.totalPages
	}
	if v.Page.Page < 1 {
		v.Page.Page = 1
	}
	v.visible = make([]bool, len(v.Table.Rows))
	start, end := v.pageBounds()
	for _, r := range v.filtered[start:end] {
		if r.Index >= 0 && r.Index < len(v.visible) {
			v.visible[r.Index] = true
		}
	}
}

func (v *View) pageBounds() (int, int) {
	start := (v.Page.Page - 1) * v.Page.Size
	if start > len(v.filtered) {
		start = len(v.filtered)
	}
	end := start + v.Page.Size
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return start, end
}

func (v *View) TotalPages() int { return v.totalPages }

// PageRows is the active page's slice of the filtered collection.
func (v *View) PageRows() []model.Row {
	start, end := v.pageBounds()
	return v.filtered[start:end]
}

// Visible reports per-arena-row visibility; index by Row.Index.
func (v *View) Visible() []bool { return v.visible }

// GoTo moves to page n; out-of-range requests are no-ops, not errors.
func (v *View) GoTo(n int) {
	if n < 1 || n > v.totalPages || n == v.Page.Page {
		return
	}
	v.Page.Page = n
	v.paginate()
}

func (v *View) FirstPage() { v.GoTo(1) }
func (v *View) PrevPage()  { v.GoTo(v.Page.Page - 1) }
func (v *View) NextPage()  { v.GoTo(v.Page.Page + 1) }
func (v *View) LastPage()  { v.GoTo(v.totalPages) }

// SetPageSize switches the rows-per-page choice and returns to page 1.
func (v *View) SetPageSize(size int) {
	if size <= 0 || size == v.Page.Size {
		return
	}
	v.Page.Size = size
	v.Page.Page = 1
	v.paginate()
}
