package utils

import "golang.org/x/exp/constraints"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// CheckedAdd returns a+b and false if the sum wraps around.
func CheckedAdd[T constraints.Unsigned](a, b T) (T, bool) {
	sum := a + b
	return sum, sum >= a
}

// CheckedSub returns a-b and false if b exceeds a.
func CheckedSub[T constraints.Unsigned](a, b T) (T, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}

// SaturatingAdd returns a+b clamped to the maximum value of T.
func SaturatingAdd[T constraints.Unsigned](a, b T) T {
	sum, ok := CheckedAdd(a, b)
	if !ok {
		return ^T(0)
	}
	return sum
}
