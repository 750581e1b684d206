// Package numeric holds the rounding and averaging helpers shared by the
// scoring code and the profile generator.
package numeric

import (
	"math"
	"math/big"
	"strconv"
)

// Round2 rounds v to two decimal places. The stored binary value is rounded
// directly, so 1.115 (held as 1.11499...) becomes 1.11 and an exact half
// such as 0.125 goes to the even digit.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Sum adds values left to right.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean of values. The sum is accumulated
// exactly and rounded once, so the result does not depend on the order of
// the values. An empty slice yields 0.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := new(big.Rat)
	for _, v := range values {
		r := new(big.Rat).SetFloat64(v)
		if r == nil {
			return Sum(values) / float64(len(values))
		}
		total.Add(total, r)
	}
	total.Quo(total, new(big.Rat).SetInt64(int64(len(values))))
	f, _ := total.Float64()
	return f
}
