// Package keyboard holds the static finger-group table for a standard US
// layout. The table is only used to group latency aggregates; it is never
// persisted per user.
package keyboard

import "unicode"

const (
	LeftPinky   = "left-pinky"
	LeftRing    = "left-ring"
	LeftMiddle  = "left-middle"
	LeftIndex   = "left-index"
	RightIndex  = "right-index"
	RightMiddle = "right-middle"
	RightRing   = "right-ring"
	RightPinky  = "right-pinky"
	LeftThumb   = "left-thumb"
	RightThumb  = "right-thumb"
)

var fingerGroups = map[rune]string{
	'q': LeftPinky, 'a': LeftPinky, 'z': LeftPinky, '1': LeftPinky,
	'w': LeftRing, 's': LeftRing, 'x': LeftRing, '2': LeftRing,
	'e': LeftMiddle, 'd': LeftMiddle, 'c': LeftMiddle, '3': LeftMiddle,
	'r': LeftIndex, 'f': LeftIndex, 'v': LeftIndex, '4': LeftIndex,
	't': LeftIndex, 'g': LeftIndex, 'b': LeftIndex, '5': LeftIndex,
	'y': RightIndex, 'h': RightIndex, 'n': RightIndex, '6': RightIndex,
	'u': RightIndex, 'j': RightIndex, 'm': RightIndex, '7': RightIndex,
	'i': RightMiddle, 'k': RightMiddle, ',': RightMiddle, '8': RightMiddle,
	'o': RightRing, 'l': RightRing, '.': RightRing, '9': RightRing,
	'p': RightPinky, ';': RightPinky, '/': RightPinky, '0': RightPinky,
	'\'': RightPinky, '[': RightPinky, ']': RightPinky, '-': RightPinky,
	'=': RightPinky,
	' ': RightThumb,
}

// FingerGroup returns the group label for a typed character, case
// insensitive. The second return is false for characters outside the table.
func FingerGroup(r rune) (string, bool) {
	group, ok := fingerGroups[unicode.ToLower(r)]
	return group, ok
}
