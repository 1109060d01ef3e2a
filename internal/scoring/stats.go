package scoring

import "math"

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := 0.0
	for _, v := range xs {
		s += v
	}
	return s / float64(len(xs))
}

// stddev is the population standard deviation (denominator N).
// A series shorter than two samples has no spread, so it reports 0.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	ss := 0.0
	for _, v := range xs {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// linearRegression fits ys against xs with ordinary least squares and
// returns the slope and coefficient of determination. A degenerate x
// spread yields slope 0; a perfectly flat series fits itself, so a zero
// total sum of squares yields rSquared 1.
func linearRegression(xs, ys []float64) (slope, rSquared float64) {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0, 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		slope = 0
	} else {
		slope = (float64(n)*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / float64(n)

	var ssRes, ssTot float64
	meanY := sumY / float64(n)
	for i := 0; i < n; i++ {
		pred := slope*xs[i] + intercept
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}

	if ssTot == 0 {
		return slope, 1
	}
	rSquared = 1 - ssRes/ssTot
	return slope, rSquared
}

// autocorrLag1 computes the lag-1 autocorrelation of the z-normalized
// series. degenerate is true when the series has zero spread; callers
// treat that as fully correlated and map it to their maximum score.
func autocorrLag1(series []float64) (r float64, degenerate bool) {
	n := len(series)
	if n < 2 {
		return 0, false
	}

	m := mean(series)
	sd := stddev(series)
	if sd == 0 {
		return 0, true
	}

	zs := make([]float64, n)
	for i, v := range series {
		zs[i] = (v - m) / sd
	}

	sum := 0.0
	for i := 0; i < n-1; i++ {
		sum += zs[i] * zs[i+1]
	}
	return sum / float64(n-1), false
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// round1 rounds to one decimal place. Applied to output fields only,
// never to intermediate values.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
