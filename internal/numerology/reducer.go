package numerology

// DigitSum returns the sum of the decimal digits of |n|.
func DigitSum(n int) int {
	n = abs(n)
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// DigitsOf extracts the eight digits of a DD.MM.YYYY string in their original
// order, zeros included. The caller guarantees a well-formed input.
func DigitsOf(dateText string) []int {
	digits := make([]int, 0, 8)
	for _, r := range dateText {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}
	return digits
}

// NonZeroDigits is DigitsOf without the zero digits.
// It only seeds the first working number.
func NonZeroDigits(dateText string) []int {
	all := DigitsOf(dateText)
	digits := make([]int, 0, len(all))
	for _, d := range all {
		if d != 0 {
			digits = append(digits, d)
		}
	}
	return digits
}

// Mod9or9 reduces x modulo 9 into the range [1,9]: a zero remainder maps to 9.
// Negative inputs are normalised first, so the result is never 0.
func Mod9or9(x int) int {
	r := x % 9
	if r < 0 {
		r += 9
	}
	if r == 0 {
		return 9
	}
	return r
}

// decimalDigits returns the digits of |n| most significant first.
// Zero yields a single 0 digit.
func decimalDigits(n int) []int {
	n = abs(n)
	if n == 0 {
		return []int{0}
	}
	// Prepend, so the most significant digit ends up first.
	var digits []int
	for n > 0 {
		digits = append([]int{n % 10}, digits...)
		n /= 10
	}
	return digits
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
