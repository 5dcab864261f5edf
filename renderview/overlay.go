package renderview

// SetStatusOverlay writes text into overlay slot. The overlay grows to fit
// the slot. A negative slot clears the whole overlay.
func (v *View) SetStatusOverlay(slot int, text string) {
	v.overlayLock.Lock()
	if slot < 0 {
		v.overlay = nil
	} else {
		if slot >= len(v.overlay) {
			grown := make([]string, slot+1)
			copy(grown, v.overlay)
			v.overlay = grown
		}

		v.overlay[slot] = text
	}
	v.overlayLock.Unlock()

	if slot < 0 {
		text = ""
	}

	v.invoke(HookPosOverlay, OverlayChange{Slot: slot, Text: text})
}

// ClearStatusOverlay removes all the overlay text.
func (v *View) ClearStatusOverlay() {
	v.SetStatusOverlay(-1, "")
}

// StatusOverlay returns a copy of the overlay slots.
func (v *View) StatusOverlay() []string {
	v.overlayLock.Lock()
	defer v.overlayLock.Unlock()

	lines := make([]string, len(v.overlay))
	copy(lines, v.overlay)

	return lines
}
