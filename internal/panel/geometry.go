package panel

// OpenDisplacement returns the horizontal offset of the main host once the
// given side pane is revealed. Opening the left pane slides the main pane
// right (positive), leaving leftOffset of it on screen; opening the right
// pane slides it left (negative) symmetrically.
func OpenDisplacement(side Side, mainWidth, leftOffset, rightOffset float64) float64 {
	if side == SideLeft {
		return mainWidth - leftOffset
	}
	return rightOffset - mainWidth
}
