package contracts

// Delta returns the signed difference between a current score and the prior
// one, or nil when there is no baseline (first-ever analysis, or the
// framework was inapplicable last time). No rounding or clamping.
func Delta(current int, previous *int) *int {
	if previous == nil {
		return nil
	}
	d := current - *previous
	return &d
}
