package domain

// Activity represents the canonical extracurricular record stored in MongoDB.
// Name is the unique key; Participants preserves signup order.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// Detail is an Activity without its name, used when records are re-keyed
// into a name-indexed map.
type Detail struct {
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// Enrolled reports whether the participant already appears on the roster.
func (a Activity) Enrolled(participant string) bool {
	for _, p := range a.Participants {
		if p == participant {
			return true
		}
	}
	return false
}

// Full reports whether the roster has reached capacity.
func (a Activity) Full() bool {
	return len(a.Participants) >= a.MaxParticipants
}
