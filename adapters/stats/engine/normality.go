package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"sixsigma/domain/core"
	"sixsigma/domain/quality"
)

// NormalityChecker runs Anderson-Darling, Shapiro-Wilk and
// Kolmogorov-Smirnov tests against the null hypothesis that the sample
// is normal. Anderson-Darling is authoritative for the overall verdict
// since it stays computable at any sample size.
type NormalityChecker struct{}

// NewNormalityChecker creates a new checker.
func NewNormalityChecker() *NormalityChecker {
	return &NormalityChecker{}
}

// ShapiroMaxN is the practical sample-size limit for Shapiro-Wilk.
// Above it the test fields come back nil.
const ShapiroMaxN = 5000

const normalityAlpha = 0.05

// Check runs all three tests. Requires at least 3 points.
func (nc *NormalityChecker) Check(sample []float64) (*quality.NormalityResult, error) {
	n := len(sample)
	if n < 3 {
		return nil, core.NewInsufficientDataError(3, n)
	}

	sorted := make([]float64, n)
	copy(sorted, sample)
	sort.Float64s(sorted)

	result := &quality.NormalityResult{SampleSize: n}

	result.AndersonStat, result.AndersonCritical5 = andersonDarling(sorted)
	result.AndersonNormal = result.AndersonStat < result.AndersonCritical5

	if n < ShapiroMaxN {
		w, p := shapiroWilk(sorted)
		pass := p > normalityAlpha
		result.ShapiroStat = &w
		result.ShapiroP = &p
		result.ShapiroNormal = &pass
	}

	result.KSStat, result.KSP = ksAgainstFittedNormal(sorted)
	result.KSNormal = result.KSP > normalityAlpha

	result.OverallNormal = result.AndersonNormal
	return result, nil
}

// andersonDarling computes the A2 statistic against a normal
// distribution with mean and variance estimated from the sample, and
// the 5%-significance critical value adjusted for sample size
// (Stephens' case 4 table).
func andersonDarling(sorted []float64) (statistic, critical5 float64) {
	n := len(sorted)
	mean, sd := meanAndSampleSD(sorted)

	fn := float64(n)
	critical5 = 0.787 / (1 + 4/fn - 25/(fn*fn))
	if sd == 0 {
		// Degenerate sample: a point mass is maximally far from any
		// normal distribution.
		return math.Inf(1), critical5
	}


	sum := 0.0
	for i := 0; i < n; i++ {
		zLow := (sorted[i] - mean) / sd
		zHigh := (sorted[n-1-i] - mean) / sd
		cdfLow := distuv.UnitNormal.CDF(zLow)
		survHigh := distuv.UnitNormal.Survival(zHigh)
		sum += (2*float64(i+1) - 1) * (safeLog(cdfLow) + safeLog(survHigh))
	}
	statistic = -fn - sum/fn
	return statistic, critical5
}

// ksAgainstFittedNormal computes the one-sample KS statistic against a
// normal fitted to the sample's own mean and population standard
// deviation, with the asymptotic Kolmogorov p-value (small-sample
// corrected).
func ksAgainstFittedNormal(sorted []float64) (statistic, pValue float64) {
	n := len(sorted)
	fn := float64(n)

	mean, _ := meanAndSampleSD(sorted)
	sd := populationSD(sorted, mean)
	if sd == 0 {
		// Degenerate sample: the empirical step function is maximally
		// far from any continuous CDF.
		return 1, 0
	}

	dist := distuv.Normal{Mu: mean, Sigma: sd}
	d := 0.0
	for i, x := range sorted {
		cdf := dist.CDF(x)
		dPlus := float64(i+1)/fn - cdf
		dMinus := cdf - float64(i)/fn
		d = math.Max(d, math.Max(dPlus, dMinus))
	}

	sqrtN := math.Sqrt(fn)
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d
	return d, kolmogorovSurvival(lambda)
}

// kolmogorovSurvival evaluates Q_KS(lambda) = 2 sum (-1)^(j-1) exp(-2 j^2 lambda^2).
func kolmogorovSurvival(lambda float64) float64 {
	if lambda <= 0 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for j := 1; j <= 100; j++ {
		term := sign * math.Exp(-2*float64(j)*float64(j)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-10 {
			break
		}
		sign = -sign
	}
	p := 2 * sum
	return math.Max(0, math.Min(1, p))
}

// shapiroWilk computes the W statistic and p-value using Royston's
// AS R94 approximation, valid for 3 <= n <= 5000.
func shapiroWilk(sorted []float64) (w, pValue float64) {
	n := len(sorted)
	fn := float64(n)

	// Expected values of normal order statistics (Blom scores).
	m := make([]float64, n)
	ssqM := 0.0
	for i := 0; i < n; i++ {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (fn + 0.25))
		ssqM += m[i] * m[i]
	}

	// Royston's polynomial-corrected weights.
	a := make([]float64, n)
	u := 1 / math.Sqrt(fn)
	rootSsqM := math.Sqrt(ssqM)

	switch {
	case n == 3:
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
	case n <= 5:
		an := m[n-1]/rootSsqM + 0.221157*u - 0.147981*u*u -
			2.071190*math.Pow(u, 3) + 4.434685*math.Pow(u, 4) - 2.706056*math.Pow(u, 5)
		phi := (ssqM - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		rootPhi := math.Sqrt(phi)
		for i := 1; i < n-1; i++ {
			a[i] = m[i] / rootPhi
		}
		a[n-1] = an
		a[0] = -an
	default:
		an := m[n-1]/rootSsqM + 0.221157*u - 0.147981*u*u -
			2.071190*math.Pow(u, 3) + 4.434685*math.Pow(u, 4) - 2.706056*math.Pow(u, 5)
		an1 := m[n-2]/rootSsqM + 0.042981*u - 0.293762*u*u -
			1.752461*math.Pow(u, 3) + 5.682633*math.Pow(u, 4) - 3.582633*math.Pow(u, 5)
		phi := (ssqM - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) /
			(1 - 2*an*an - 2*an1*an1)
		rootPhi := math.Sqrt(phi)
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / rootPhi
		}
		a[n-1] = an
		a[n-2] = an1
		a[0] = -an
		a[1] = -an1
	}

	mean := 0.0
	for _, x := range sorted {
		mean += x
	}
	mean /= fn

	num := 0.0
	den := 0.0
	for i, x := range sorted {
		num += a[i] * x
		den += (x - mean) * (x - mean)
	}
	if den == 0 {
		// All values identical: W undefined, report minimal evidence
		// for normality.
		return 1, 0
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}

	// Normalizing transformation for the p-value.
	var z float64
	switch {
	case n == 3:
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return w, math.Max(0, math.Min(1, p))
	case n <= 11:
		g := -2.273 + 0.459*fn
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		z = (-math.Log(g-math.Log(1-w)) - mu) / sigma
	default:
		lnN := math.Log(fn)
		mu := 0.0038915*lnN*lnN*lnN - 0.083751*lnN*lnN - 0.31082*lnN - 1.5861
		sigma := math.Exp(0.0030302*lnN*lnN - 0.082676*lnN - 0.4803)
		z = (math.Log(1-w) - mu) / sigma
	}
	pValue = distuv.UnitNormal.Survival(z)
	return w, pValue
}

func meanAndSampleSD(data []float64) (mean, sd float64) {
	n := float64(len(data))
	for _, x := range data {
		mean += x
	}
	mean /= n

	sumSq := 0.0
	for _, x := range data {
		diff := x - mean
		sumSq += diff * diff
	}
	if len(data) > 1 {
		sd = math.Sqrt(sumSq / (n - 1))
	}
	return mean, sd
}

func populationSD(data []float64, mean float64) float64 {
	sumSq := 0.0
	for _, x := range data {
		diff := x - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(data)))
}

// safeLog guards against log(0) for extreme tail observations.
func safeLog(v float64) float64 {
	const floor = 1e-300
	if v < floor {
		v = floor
	}
	return math.Log(v)
}
