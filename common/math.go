package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Approach moves current toward target by at most step.
func Approach(current, target, step float64) float64 {
	if current < target {
		return min(current+step, target)
	}
	return max(current-step, target)
}
