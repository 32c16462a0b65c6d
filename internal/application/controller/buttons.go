package controller

// Menu button geometry in screen pixels
const (
	ButtonWidth   = 220
	ButtonHeight  = 60
	ButtonSpacing = 20
)

// ButtonKind is the action behind a menu button
type ButtonKind int

const (
	ButtonNext ButtonKind = iota
	ButtonRetry
	ButtonQuit
)

// String returns the button label
func (k ButtonKind) String() string {
	switch k {
	case ButtonNext:
		return "NEXT LEVEL"
	case ButtonRetry:
		return "RETRY"
	case ButtonQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// Button is a clickable menu entry. (X, Y) is the top-left corner in
// screen space, matching mouse coordinates.
type Button struct {
	Kind ButtonKind
	X, Y float64
	W, H float64
}

// Contains reports whether the point is inside the button
func (b Button) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// layoutButtons stacks the buttons vertically, centred on the screen
func layoutButtons(screenW, screenH int, kinds ...ButtonKind) []Button {
	n := len(kinds)
	if n == 0 {
		return nil
	}
	total := float64(n*ButtonHeight + (n-1)*ButtonSpacing)
	x := (float64(screenW) - ButtonWidth) / 2
	y := (float64(screenH) - total) / 2

	buttons := make([]Button, n)
	for i, k := range kinds {
		buttons[i] = Button{
			Kind: k,
			X:    x,
			Y:    y + float64(i*(ButtonHeight+ButtonSpacing)),
			W:    ButtonWidth,
			H:    ButtonHeight,
		}
	}
	return buttons
}

func buttonAt(buttons []Button, x, y float64) (ButtonKind, bool) {
	for _, b := range buttons {
		if b.Contains(x, y) {
			return b.Kind, true
		}
	}
	return 0, false
}
