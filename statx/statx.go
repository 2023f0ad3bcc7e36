/*Package statx provides the small statistical toolkit the accumulators in
package accum are built on: circular mean/std for angular data, quantile
based robust standard deviation, and the Magnus dew-point approximation.

It follows the rounding/helper-function style of golaborate's mathx package
but leans on gonum/stat for the circular mean and the arithmetic mean
instead of hand-rolling them. The quantiles behind MedianStdDev are
computed in this package with numpy's default linear method.
*/
package statx

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// robustStdFactor converts an interquartile range to an estimate of the
// standard deviation of a normal distribution, 1/(2*erfinv(0.5)*sqrt(2)).
const robustStdFactor = 0.7413

// Magnus constants for the dew-point approximation.
const (
	magnusBeta   = 17.62
	magnusLambda = 243.12
)

// DewPointMagnus computes dew point in degrees Celsius from relative
// humidity (percent) and air temperature (degrees Celsius) using the Magnus
// formula. Returns NaN if either input is NaN.
func DewPointMagnus(relativeHumidity, temperature float64) float64 {
	if math.IsNaN(relativeHumidity) || math.IsNaN(temperature) {
		return math.NaN()
	}
	f := math.Log(relativeHumidity*0.01) + magnusBeta*temperature/(magnusLambda+temperature)
	return magnusLambda * f / (magnusBeta - f)
}

// CircularMeanStdDev returns the circular mean (normalized to [0, 360)) and
// circular standard deviation, in degrees, of a set of angles given in
// degrees. Returns (NaN, NaN) for an empty input.
func CircularMeanStdDev(anglesDeg []float64) (mean, std float64) {
	if len(anglesDeg) == 0 {
		return math.NaN(), math.NaN()
	}
	radians := make([]float64, len(anglesDeg))
	for i, a := range anglesDeg {
		radians[i] = a * math.Pi / 180
	}
	meanRad := stat.CircularMean(radians, nil)
	mean = meanRad * 180 / math.Pi
	if mean < 0 {
		mean += 360
	}

	// R is the mean resultant length; circular std = sqrt(-2 ln R).
	var sumSin, sumCos float64
	for _, r := range radians {
		sumSin += math.Sin(r)
		sumCos += math.Cos(r)
	}
	n := float64(len(radians))
	r := math.Hypot(sumSin/n, sumCos/n)
	if r <= 0 {
		return mean, math.Inf(1)
	}
	std = math.Sqrt(-2*math.Log(r)) * 180 / math.Pi
	return mean, std
}

// MedianStdDev returns the median and a quantile-based robust estimate of
// the standard deviation (0.7413 * IQR) of a data set. data is sorted in
// place. Quantiles use linear interpolation between closest ranks,
// matching numpy's default quantile method rather than
// the empirical CDF, since that is what the original implementation's
// np.quantile call produces. Returns (NaN, NaN) for an empty input.
func MedianStdDev(data []float64) (median, std float64) {
	if len(data) == 0 {
		return math.NaN(), math.NaN()
	}
	sort.Float64s(data)
	// quantile reads position p*(n-1) of the sorted data, interpolating
	// linearly between the two neighbouring ranks.
	quantile := func(p float64) float64 {
		h := p * float64(len(data)-1)
		lo := int(h)
		if lo+1 >= len(data) {
			return data[len(data)-1]
		}
		return data[lo] + (h-float64(lo))*(data[lo+1]-data[lo])
	}
	q25, q50, q75 := quantile(0.25), quantile(0.50), quantile(0.75)
	return q50, robustStdFactor * (q75 - q25)
}

// Max returns the maximum value in data, or NaN if data is empty.
func Max(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	m := data[0]
	for _, v := range data[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Mean returns the arithmetic mean of data, or NaN if data is empty.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	return stat.Mean(data, nil)
}

// MaxAbs returns the signed value in data with the largest absolute
// magnitude, or NaN if data is empty.
func MaxAbs(data []float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}
	m := data[0]
	for _, v := range data[1:] {
		if math.Abs(v) > math.Abs(m) {
			m = v
		}
	}
	return m
}

// Round rounds x to the nearest multiple of unit (0.1 for tenths, 0.01 for
// hundredths, and so on). Kept from golaborate's mathx.Round.
func Round(x, unit float64) float64 {
	return float64(int64(x/unit+0.5)) * unit
}
