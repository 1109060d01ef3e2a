package scoring

import "math"

const (
	spiralMinPoints = 50

	spiralTremorWeight      = 0.25
	spiralSmoothnessWeight  = 0.30
	spiralSpeedWeight       = 0.20
	spiralConsistencyWeight = 0.25

	// Consecutive samples closer than this in time are treated as
	// duplicates and skipped when deriving velocities.
	minStepSeconds = 0.001
)

const spiralInsufficientMsg = "Not enough drawing data to analyze. Please draw a complete spiral."

// ScoreSpiral converts a timestamped 2D trajectory into tremor,
// smoothness, speed and consistency subscores. The input is never
// mutated and the function holds no state across calls.
func ScoreSpiral(points []TimestampedPoint) (SpiralResult, error) {
	if len(points) == 0 {
		return SpiralResult{}, invalidInput("spiral assessment requires at least one point")
	}
	if len(points) < spiralMinPoints {
		return SpiralResult{
			Status:    StatusInsufficientData,
			RiskLevel: RiskLow,
			Message:   spiralInsufficientMsg,
		}, nil
	}

	velocities := spiralVelocities(points)
	accelerations := spiralAccelerations(velocities)

	tremor := tremorScore(points, accelerations)
	smoothness := smoothnessScore(points)
	speed := speedScore(points)
	consistency := consistencyScore(points)

	overall := (100-tremor)*spiralTremorWeight +
		smoothness*spiralSmoothnessWeight +
		speed*spiralSpeedWeight +
		consistency*spiralConsistencyWeight

	return SpiralResult{
		Status:           StatusOK,
		TremorScore:      round1(tremor),
		SmoothnessScore:  round1(smoothness),
		SpeedScore:       round1(speed),
		ConsistencyScore: round1(consistency),
		OverallScore:     round1(clamp(overall, 0, 100)),
		RiskLevel:        classifyRisk(overall, spiralLowCut, spiralHighCut),
	}, nil
}

type velocity struct {
	vx, vy float64
}

// spiralVelocities derives per-step velocities, skipping pairs whose
// time delta is within the duplicate guard.
func spiralVelocities(points []TimestampedPoint) []velocity {
	velocities := make([]velocity, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		dt := float64(points[i].TimestampMs-points[i-1].TimestampMs) / 1000
		if dt <= minStepSeconds {
			continue
		}
		velocities = append(velocities, velocity{
			vx: (points[i].X - points[i-1].X) / dt,
			vy: (points[i].Y - points[i-1].Y) / dt,
		})
	}
	return velocities
}

// spiralAccelerations is the Euclidean norm of consecutive velocity
// differences.
func spiralAccelerations(velocities []velocity) []float64 {
	if len(velocities) < 2 {
		return nil
	}
	accs := make([]float64, 0, len(velocities)-1)
	for i := 1; i < len(velocities); i++ {
		dvx := velocities[i].vx - velocities[i-1].vx
		dvy := velocities[i].vy - velocities[i-1].vy
		accs = append(accs, math.Hypot(dvx, dvy))
	}
	return accs
}

// tremorScore maps the RMS acceleration magnitude onto [0,100]. Higher
// means more oscillatory motion.
func tremorScore(points []TimestampedPoint, accelerations []float64) float64 {
	if len(points) < 5 || len(accelerations) < 4 {
		return 0
	}
	ss := 0.0
	for _, a := range accelerations {
		ss += a * a
	}
	rms := math.Sqrt(ss / float64(len(accelerations)))
	score := rms / 20
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return math.Min(100, score)
}

// smoothnessScore penalizes jerk, measured as the second-difference norm
// of positions at each interior point.
func smoothnessScore(points []TimestampedPoint) float64 {
	if len(points) < 3 {
		return 100
	}
	jerks := make([]float64, 0, len(points)-2)
	for i := 1; i < len(points)-1; i++ {
		jx := points[i+1].X - 2*points[i].X + points[i-1].X
		jy := points[i+1].Y - 2*points[i].Y + points[i-1].Y
		jerks = append(jerks, math.Hypot(jx, jy))
	}
	if len(jerks) == 0 {
		return 100
	}
	score := 100 - mean(jerks)*5
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 100
	}
	return math.Max(0, score)
}

// speedScore rewards uniform drawing speed via the coefficient of
// variation of per-step speeds.
func speedScore(points []TimestampedPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	speeds := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		dt := float64(points[i].TimestampMs-points[i-1].TimestampMs) / 1000
		if dt <= minStepSeconds {
			continue
		}
		dist := math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
		speeds = append(speeds, dist/dt)
	}
	if len(speeds) == 0 {
		return 0
	}
	m := mean(speeds)
	if m == 0 {
		return 0
	}
	cv := stddev(speeds) / m
	if math.IsNaN(cv) || math.IsInf(cv, 0) {
		return 0
	}
	return math.Max(0, 100-cv*100)
}

// consistencyScore regresses each point's radial distance from the
// centroid against its sample index. A clean spiral grows its radius
// almost linearly, so R-squared acts as a consistency proxy.
func consistencyScore(points []TimestampedPoint) float64 {
	if len(points) < 10 {
		return 0
	}

	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(points))
	cy /= float64(len(points))

	idx := make([]float64, len(points))
	radii := make([]float64, len(points))
	for i, p := range points {
		idx[i] = float64(i)
		radii[i] = math.Hypot(p.X-cx, p.Y-cy)
	}

	_, r2 := linearRegression(idx, radii)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		return 0
	}
	return math.Max(0, r2*100)
}
