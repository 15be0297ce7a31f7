package reward

// CrossedMilestones returns the milestones in (before, after], in the order
// they are configured.
func CrossedMilestones(milestones []int64, before, after int64) []int64 {
	var crossed []int64
	for _, m := range milestones {
		if before < m && m <= after {
			crossed = append(crossed, m)
		}
	}

	return crossed
}
