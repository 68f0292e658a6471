package otp

// Form pairs a Draft with the currently focused cell.
type Form struct {
	Draft Draft
	Focus int
}

// Type enters a single character at the focused cell.
func (f *Form) Type(value string) {
	f.Draft, f.Focus = Input(f.Draft, f.Focus, value)
}

// Backspace applies a backspace key press at the focused cell.
func (f *Form) Backspace() {
	f.Draft, f.Focus = Backspace(f.Draft, f.Focus)
}

// Paste pastes text at the focused cell. It reports whether the paste was
// honored.
func (f *Form) Paste(text string) bool {
	d, focus, ok := Paste(f.Draft, f.Focus, text)
	if ok {
		f.Draft, f.Focus = d, focus
	}
	return ok
}

// Reset clears every cell and focuses the first.
func (f *Form) Reset() {
	f.Draft, f.Focus = Clear()
}
