package artifact

// PreviousValues derives the prev pointers for a reading dated newDate
// from the prior artifact. With no prior artifact, or when the prior week
// ending matches the new one, every prev stays nil: re-fetching an
// unchanged report is not a new data point. Only a genuinely advanced
// week copies the prior values forward, matched by row label.
func PreviousValues(prior *Artifact, newDate string) map[string]*float64 {
	prevs := map[string]*float64{
		LabelNet:   nil,
		LabelLong:  nil,
		LabelShort: nil,
	}
	if prior == nil || prior.Cot.WeekEnding == "" || prior.Cot.WeekEnding == newDate {
		return prevs
	}
	for _, row := range prior.Cot.Rows {
		if _, ok := prevs[row.Label]; ok {
			v := row.Value
			prevs[row.Label] = &v
		}
	}
	return prevs
}
