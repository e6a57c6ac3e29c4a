// Package numerology scores how well a vibration fits a person's numerology profile.
//
// Everything in this package is pure: no I/O, no shared mutable state. Callers may use it
// from any number of goroutines without coordination.
package numerology

// Master numbers are never reduced further.
const (
	MasterEleven     = 11
	MasterTwentyTwo  = 22
	absentVibration  = 0
	defaultVibration = 1
)

// Vibrations lists every canonical numerology number in solver order.
var Vibrations = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, MasterEleven, MasterTwentyTwo}

// Reduce collapses n into its canonical numerology number by repeated digit sums.
// 11 and 22 are returned as-is, even before the first sum. Zero and negative input
// return 0, which callers treat as "no value".
func Reduce(n int) int {
	if n <= 0 {
		return absentVibration
	}
	for n > 9 && !IsMaster(n) {
		n = digitSum(n)
	}
	return n
}

// IsMaster reports whether n is one of the master numbers.
func IsMaster(n int) bool {
	return n == MasterEleven || n == MasterTwentyTwo
}

// IsCanonical reports whether n is in {1..9, 11, 22}.
func IsCanonical(n int) bool {
	return (n >= 1 && n <= 9) || IsMaster(n)
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}
