package domain

// Viewport breakpoints in logical pixels.
const (
	WideMinWidth   = 968
	MediumMinWidth = 768
)

// Layout holds the batch sizes and continuation mode chosen for a viewport.
type Layout struct {
	BatchInitial int  `json:"batch_initial"`
	BatchStep    int  `json:"batch_step"`
	ButtonMode   bool `json:"button_mode"`
}

// Classify maps a viewport width to its layout band:
//
//	>= 968  → 6 initial, 3 per step, scroll-triggered
//	>= 768  → 4 initial, 2 per step, scroll-triggered
//	<  768  → 3 initial, 3 per step, "load more" button
func Classify(width int) Layout {
	switch {
	case width >= WideMinWidth:
		return Layout{BatchInitial: 6, BatchStep: 3}
	case width >= MediumMinWidth:
		return Layout{BatchInitial: 4, BatchStep: 2}
	default:
		return Layout{BatchInitial: 3, BatchStep: 3, ButtonMode: true}
	}
}

// Mode names the continuation mode for display purposes.
func (l Layout) Mode() string {
	if l.ButtonMode {
		return "button"
	}
	return "scroll"
}
