package viewport

// Window maps a fixed-height viewport onto row indices. Heights are in
// terminal rows; RowHeight is the number of terminal rows per record.
type Window struct {
	Total        int // Logical row count
	Height       int // Total viewport height including header chrome
	RowHeight    int
	HeaderHeight int
	Offset       int // First visible row
}

// Rows returns how many records fit in the list area. Always at least one.
func (w Window) Rows() int {
	rh := w.RowHeight
	if rh <= 0 {
		rh = 1
	}
	rows := (w.Height - w.HeaderHeight) / rh
	if rows < 1 {
		rows = 1
	}
	return rows
}

// maxOffset is the largest offset that still fills the window.
func (w Window) maxOffset() int {
	m := w.Total - w.Rows()
	if m < 0 {
		return 0
	}
	return m
}

// clamp keeps Offset within [0, maxOffset].
func (w *Window) clamp() {
	if w.Offset > w.maxOffset() {
		w.Offset = w.maxOffset()
	}
	if w.Offset < 0 {
		w.Offset = 0
	}
}

// Resize changes the viewport height, keeping the offset valid.
func (w *Window) Resize(height int) {
	w.Height = height
	w.clamp()
}

// ScrollBy moves the window by delta rows.
func (w *Window) ScrollBy(delta int) {
	w.Offset += delta
	w.clamp()
}

// ScrollTo makes index the first visible row, as far as possible.
func (w *Window) ScrollTo(index int) {
	w.Offset = index
	w.clamp()
}

// PageDown scrolls forward by one window.
func (w *Window) PageDown() { w.ScrollBy(w.Rows()) }

// PageUp scrolls backward by one window.
func (w *Window) PageUp() { w.ScrollBy(-w.Rows()) }

// Home scrolls to the first row.
func (w *Window) Home() { w.ScrollTo(0) }

// End scrolls to the last page.
func (w *Window) End() { w.ScrollTo(w.maxOffset()) }

// Visible returns the inclusive index range currently on screen.
func (w Window) Visible() (start, stop int) {
	if w.Total <= 0 {
		return 0, -1
	}
	start = w.Offset
	stop = start + w.Rows() - 1
	if stop >= w.Total {
		stop = w.Total - 1
	}
	return start, stop
}
