package scheduling

// transitions is the lifecycle table. A cancelled or no-show row keeps
// its record but stops counting as busy, which is what releases the
// interval; there is no separate calendar write.
var transitions = map[Status][]Status{
	StatusNew:        {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether the lifecycle table permits from→to.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
