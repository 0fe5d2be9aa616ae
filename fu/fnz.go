package fu

import "math"

/*
Fnzi returns the first non-zero integer from the given arguments
*/
func Fnzi(a ...int) int {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

/*
Fnzf returns the first non-zero float from the given arguments
*/
func Fnzf(a ...float64) float64 {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

func Mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

/*
Ceili rounds a float up to the nearest integer
*/
func Ceili(x float64) int {
	return int(math.Ceil(x))
}
