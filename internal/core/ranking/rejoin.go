package ranking

// Scored is one id and optional score named by a remote scorer
type Scored struct {
	ID    int64    `json:"id"`
	Score *float64 `json:"score,omitempty"`
}

// ScoreOr returns the remote score or def when the scorer omitted it
func (s Scored) ScoreOr(def float64) float64 {
	if s.Score == nil {
		return def
	}
	return *s.Score
}

// IDs returns the ids in named order
func IDs(named []Scored) []int64 {
	out := make([]int64, 0, len(named))
	for _, n := range named {
		out = append(out, n.ID)
	}
	return out
}

// Rejoin keeps the named ids present in known, in named order
// duplicates are dropped, Score takes the remote value or def, Reason is set on every item
func Rejoin(named []Scored, known []Item, def float64, reason string) []Item {
	byID := make(map[int64]Item, len(known))
	for _, it := range known {
		byID[it.ID] = it
	}
	out := make([]Item, 0, min(len(named), len(known)))
	seen := make(map[int64]struct{}, len(known))
	for _, n := range named {
		it, ok := byID[n.ID]
		if !ok {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		it.Score = n.ScoreOr(def)
		it.Reason = reason
		out = append(out, it)
	}
	return out
}
