package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/flocksim/internal/flock"
	"github.com/san-kum/flocksim/internal/sim"
)

// Summary is the JSON form of a headless run: how it was set up and where the
// metrics ended.
type Summary struct {
	Seed       int64              `json:"seed"`
	Arena      flock.Arena        `json:"arena"`
	Ticks      int                `json:"ticks"`
	TickMs     int64              `json:"tick_ms"`
	ElapsedSec float64            `json:"elapsed_sec"`
	Agents     int                `json:"agents"`
	POIs       []flock.POI        `json:"pois"`
	Metrics    map[string]float64 `json:"metrics"`
}

func NewSummary(seed int64, cfg sim.RunConfig, r *sim.Result) Summary {
	return Summary{
		Seed:       seed,
		Arena:      r.Final.Arena,
		Ticks:      r.TicksTaken,
		TickMs:     cfg.TickDuration.Milliseconds(),
		ElapsedSec: r.Final.Elapsed.Seconds(),
		Agents:     r.Final.AgentCount,
		POIs:       r.Final.POIs,
		Metrics:    r.Metrics,
	}
}

func WriteJSON(w io.Writer, summaries ...Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(summaries) == 1 {
		return enc.Encode(summaries[0])
	}
	return enc.Encode(summaries)
}
