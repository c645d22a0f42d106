// Package artifact defines the consolidated sentiment artifact written at
// the end of each collector run, its JSON persistence, and the
// reconciliation of a new reading against the previously written file.
package artifact

// Positioning row labels.
const (
	LabelNet   = "Net"
	LabelLong  = "Long"
	LabelShort = "Short"
)

// Survey row labels.
const (
	LabelBullish = "Bullish"
	LabelNeutral = "Neutral"
	LabelBearish = "Bearish"
)

// Version is the artifact schema version.
const Version = 2

// Row is one labeled gauge on the dashboard. Prev stays nil until a later
// week supersedes the value; Max is a display ceiling, not a data bound.
type Row struct {
	Label string   `json:"label"`
	Value float64  `json:"value"`
	Prev  *float64 `json:"prev"`
	Max   float64  `json:"max"`
}

// CotBlock carries the weekly positioning reading.
type CotBlock struct {
	WeekEnding string `json:"weekEnding"`
	Source     string `json:"source"`
	Instrument string `json:"instrument"`
	Rows       []Row  `json:"rows"`
}

// AaiiBlock carries the manually supplied survey readings.
type AaiiBlock struct {
	Source string `json:"source"`
	Rows   []Row  `json:"rows"`
}

// Artifact is the consolidated output. Each run constructs a fresh one
// and overwrites the file in full; the written file is the next run's
// prior snapshot.
type Artifact struct {
	Cot     CotBlock  `json:"cot"`
	Aaii    AaiiBlock `json:"aaii"`
	Updated string    `json:"updated"`
	Version int       `json:"version"`
}

// RowMaxes holds display ceilings for the positioning rows.
type RowMaxes struct {
	Net   float64
	Long  float64
	Short float64
}

// DefaultMaxes returns the standard dashboard ceilings.
func DefaultMaxes() RowMaxes {
	return RowMaxes{Net: 50000, Long: 100000, Short: 100000}
}

// Row returns the block's row with the given label.
func (b CotBlock) Row(label string) (Row, bool) {
	for _, row := range b.Rows {
		if row.Label == label {
			return row, true
		}
	}
	return Row{}, false
}

// CotRows assembles the three positioning rows in display order.
func CotRows(net, long, short float64, prevs map[string]*float64, maxes RowMaxes) []Row {
	return []Row{
		{Label: LabelNet, Value: net, Prev: prevs[LabelNet], Max: maxes.Net},
		{Label: LabelLong, Value: long, Prev: prevs[LabelLong], Max: maxes.Long},
		{Label: LabelShort, Value: short, Prev: prevs[LabelShort], Max: maxes.Short},
	}
}
