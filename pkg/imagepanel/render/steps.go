package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

// FormatSteps writes one "<boundary> <color>" line per step. The base step is written as -inf.
func FormatSteps(steps []models.ThresholdStep) string {
	lines := make([]string, 0, len(steps))
	for _, s := range steps {
		boundary := "-inf"
		if !math.IsInf(s.Value, -1) {
			boundary = strconv.FormatFloat(s.Value, 'f', -1, 64)
		}
		lines = append(lines, boundary+" "+s.Color)
	}
	return strings.Join(lines, "\n")
}

// ParseSteps reads the FormatSteps format. Blank lines are skipped and order is kept.
// Everything after the boundary is the color, so colors may contain spaces.
func ParseSteps(s string) ([]models.ThresholdStep, error) {
	var steps []models.ThresholdStep
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sep := strings.IndexAny(line, " \t")
		if sep < 0 {
			return nil, fmt.Errorf("line %d: expected \"<boundary> <color>\", got %q", i+1, line)
		}
		boundary, color := line[:sep], strings.TrimSpace(line[sep+1:])

		var value float64
		switch strings.ToLower(boundary) {
		case "-inf", "base":
			value = math.Inf(-1)
		default:
			v, err := strconv.ParseFloat(boundary, 64)
			if err != nil || math.IsNaN(v) {
				return nil, fmt.Errorf("line %d: invalid boundary %q", i+1, boundary)
			}
			value = v
		}

		steps = append(steps, models.ThresholdStep{Value: value, Color: color})
	}
	return steps, nil
}
