package settings

// Partial is a sparse settings change the engine can propose to whoever
// owns persistence. The engine never writes Settings directly; it hands a
// Partial to the UpdateFunc installed by the host and forgets about it.
type Partial struct {
	PhotoCount *int `json:"photoCount,omitempty"`
}

// UpdateFunc receives proposed settings changes. A nil UpdateFunc is valid
// and means proposals are dropped.
type UpdateFunc func(Partial)

// Apply merges a Partial into raw settings, returning the merged copy.
// Hosts that keep Settings in memory (the simulator, tests) use this to
// close the proposal loop.
func Apply(s Settings, p Partial) Settings {
	if p.PhotoCount != nil {
		v := *p.PhotoCount
		s.PhotoCount = &v
	}
	return s
}
