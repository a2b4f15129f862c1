package stats

import (
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
)

// HistogramBins is the number of bars in a printed histogram.
const HistogramBins = 15

// Values keeps every pushed value so it can be plotted later.
type Values struct {
	Statistic
	vals []float64
}

func (v *Values) Push(val float64) {
	v.Statistic.Push(val)
	v.vals = append(v.vals, val)
}

func (v *Values) PushInts(vals []int) {
	lo.ForEach(vals, func(x int, _ int) {
		v.Push(float64(x))
	})
}

// Histogram bins the pushed values.
func (v *Values) Histogram() histogram.Histogram {
	return histogram.Hist(HistogramBins, v.vals)
}

// FprintHistogram draws the histogram of the pushed values with bars at
// most width characters wide. Nothing is drawn without values.
func (v *Values) FprintHistogram(w io.Writer, width int) error {
	if len(v.vals) == 0 {
		return nil
	}
	return histogram.Fprint(w, v.Histogram(), histogram.Linear(width))
}
