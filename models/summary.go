package models

// Classify compares the integer max and min against the float thresholds
// avg*1.2 and avg*0.8. Landing exactly on a threshold is variable.
func Classify(average, max, min int) Class {
	avg := float64(average)
	if avg*1.2 > float64(max) && avg*0.8 < float64(min) {
		return Consistent
	}
	return Variable
}

// ChartPoints maps day i (1-based) to (i*15, 330 - steps/320).
func ChartPoints(steps []int) []Point {
	points := make([]Point, len(steps))
	for i, v := range steps {
		points[i] = Point{
			X: (i + 1) * PointSpacing,
			Y: ChartHeight - v/StepScale,
		}
	}
	return points
}

func BuildEntry(s UserSeries) DisplayEntry {
	entry := DisplayEntry{
		Name:   s.User,
		Points: ChartPoints(s.Steps),
	}
	if len(s.Steps) == 0 {
		entry.Class = Variable
		return entry
	}

	sum, max, min := 0, s.Steps[0], s.Steps[0]
	for _, v := range s.Steps {
		sum += v
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}

	entry.AverageSteps = sum / len(s.Steps)
	entry.MaxSteps = max
	entry.MinSteps = min
	entry.Class = Classify(entry.AverageSteps, max, min)
	return entry
}

func BuildEntries(series []UserSeries) []DisplayEntry {
	entries := make([]DisplayEntry, 0, len(series))
	for _, s := range series {
		entries = append(entries, BuildEntry(s))
	}
	return entries
}
