package export

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/san-kum/flocksim/internal/sim"
)

var ErrNoResult = errors.New("export: no result")

// WriteCSV writes the per-tick metric series of r, one row per tick, with a
// "tick" column followed by the metrics in run order.
func WriteCSV(w io.Writer, r *sim.Result) error {
	if r == nil {
		return ErrNoResult
	}

	cw := csv.NewWriter(w)

	names := r.MetricNames()
	header := append([]string{"tick"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, tick := range r.Ticks {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatUint(tick, 10))
		for _, name := range names {
			series := r.Series[name]
			val := 0.0
			if i < len(series) {
				val = series[i]
			}
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
