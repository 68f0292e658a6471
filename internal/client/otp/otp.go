// Package otp models the six-cell one-time code input.
//
// Every edit is a pure function from the current cells (and the edited
// index) to the new cells and the index that should receive focus next, so
// the rendering layer only has to move a cursor.
package otp

import "strings"

// Length is the number of cells in a code.
const Length = 6

// Draft holds one character (or nothing) per cell.
type Draft [Length]string

// Code joins the cells.
func (d Draft) Code() string {
	return strings.Join(d[:], "")
}

// Complete reports whether every cell is filled. Submitting is allowed only
// in this state.
func (d Draft) Complete() bool {
	for _, c := range d {
		if c == "" {
			return false
		}
	}
	return true
}

// Filled counts the non-empty cells.
func (d Draft) Filled() int {
	n := 0
	for _, c := range d {
		if c != "" {
			n++
		}
	}
	return n
}

func inRange(index int) bool {
	return index >= 0 && index < Length
}

// Input writes value into the cell at index. Values longer than one
// character are rejected and leave the draft as it was. A non-empty value
// moves focus to the next cell, except from the last one.
func Input(d Draft, index int, value string) (Draft, int) {
	if !inRange(index) || len([]rune(value)) > 1 {
		return d, index
	}
	d[index] = value
	if value != "" && index < Length-1 {
		return d, index + 1
	}
	return d, index
}

// Backspace clears a filled cell in place. On an empty cell it moves focus
// to the previous one without touching any data.
func Backspace(d Draft, index int) (Draft, int) {
	if !inRange(index) {
		return d, index
	}
	if d[index] != "" {
		d[index] = ""
		return d, index
	}
	if index > 0 {
		return d, index - 1
	}
	return d, index
}

// Paste distributes text over the cells, left to right, truncated to Length
// characters; cells past the text are cleared. Focus lands on the last
// filled cell. Only a paste into the first cell is honored: ok is false and
// d is returned unchanged for any other index.
func Paste(d Draft, index int, text string) (Draft, int, bool) {
	if index != 0 {
		return d, index, false
	}
	chars := []rune(text)
	if len(chars) > Length {
		chars = chars[:Length]
	}

	var next Draft
	for i, r := range chars {
		next[i] = string(r)
	}

	focus := len(chars) - 1
	if focus < 0 {
		focus = 0
	}
	return next, focus, true
}

// Clear empties all cells and returns focus to the first one.
func Clear() (Draft, int) {
	return Draft{}, 0
}
