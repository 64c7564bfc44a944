package orient

// Wrap wraps x into [min, max] (both inclusive).
func Wrap(x, min, max int) int {
	v, _ := WrapCount(x, min, max)
	return v
}

// WrapCount is like Wrap but also reports how many times the value had to
// wrap around the range to land inside it. The count is never negative.
func WrapCount(x, min, max int) (value, wraps int) {
	span := max - min + 1
	if x < min {
		distance := max - x
		return max - distance%span, distance / span
	}
	distance := x - min
	return distance%span + min, distance / span
}
