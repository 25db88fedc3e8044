package mathutil

// IntAbs returns the absolute value of an int (search: int-math).
func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Wrap returns i modulo n in [0, n), for cycling through lists in either
// direction. n must be positive.
func Wrap(i, n int) int {
	return ((i % n) + n) % n
}
