package ui

// followThreshold is the distance from the bottom, in messages, within
// which the window still counts as "at the bottom" and keeps following
// new messages.
const followThreshold = 2

// TailWindow tracks which slice of the transcript is visible. It stays
// pinned to the newest message unless the user scrolled up past the
// follow threshold, in which case new messages accumulate below and a
// jump hint is shown. Purely derived state, recomputed on every change.
type TailWindow struct {
	size   int
	offset int
}

// NewTailWindow creates a window showing up to size messages.
func NewTailWindow(size int) *TailWindow {
	if size < 1 {
		size = 1
	}
	return &TailWindow{size: size}
}

// AtBottom reports whether the window is close enough to the bottom to
// keep following new messages.
func (w *TailWindow) AtBottom() bool {
	return w.offset <= followThreshold
}

// ShowJumpHint reports whether the jump-to-bottom affordance applies.
func (w *TailWindow) ShowJumpHint() bool {
	return !w.AtBottom()
}

// Follow accounts for appended messages: a window at the bottom stays
// pinned there, a scrolled-away window holds its position.
func (w *TailWindow) Follow(appended int) {
	if appended < 0 {
		return
	}
	if w.AtBottom() {
		w.offset = 0
		return
	}
	w.offset += appended
}

// ScrollUp moves the window n messages away from the bottom, clamped to
// the transcript length.
func (w *TailWindow) ScrollUp(n, total int) {
	if n < 1 {
		n = 1
	}
	w.offset += n
	max := total - w.size
	if max < 0 {
		max = 0
	}
	if w.offset > max {
		w.offset = max
	}
}

// ScrollDown moves the window n messages toward the bottom.
func (w *TailWindow) ScrollDown(n int) {
	if n < 1 {
		n = 1
	}
	w.offset -= n
	if w.offset < 0 {
		w.offset = 0
	}
}

// JumpToBottom re-pins the window to the newest message.
func (w *TailWindow) JumpToBottom() {
	w.offset = 0
}

// Visible returns the [start, end) message range to display for a
// transcript of the given length.
func (w *TailWindow) Visible(total int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	max := total - w.size
	if max < 0 {
		max = 0
	}
	if w.offset > max {
		w.offset = max
	}
	end := total - w.offset
	start := end - w.size
	if start < 0 {
		start = 0
	}
	return start, end
}
