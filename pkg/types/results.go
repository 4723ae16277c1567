package types

// Result collects every outcome of one install or uninstall run, in
// mapping order. Aborted is set when a fatal error stopped the run early.
type Result struct {
	Action   Action    `json:"action"`
	RepoRoot string    `json:"repo_root"`
	HomeRoot string    `json:"home_root"`
	DryRun   bool      `json:"dry_run"`
	Aborted  bool      `json:"aborted"`
	Outcomes []Outcome `json:"outcomes"`
}

// Summary counts outcomes by status.
type Summary struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"by_status"`
}

// Count returns how many outcomes ended with status s.
func (s Summary) Count(status Status) int {
	return s.ByStatus[status]
}

// Changed is the number of outcomes that modified, or would modify, the filesystem.
func (s Summary) Changed() int {
	n := 0
	for status, count := range s.ByStatus {
		if status.Mutates() {
			n += count
		}
	}
	return n
}

// Add appends an outcome.
func (r *Result) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Summary tallies the outcomes collected so far.
func (r *Result) Summary() Summary {
	s := Summary{ByStatus: make(map[Status]int)}
	for _, o := range r.Outcomes {
		s.Total++
		s.ByStatus[o.Status]++
	}
	return s
}

// Categories returns category names in the order they first appear.
func (r *Result) Categories() []string {
	var names []string
	seen := make(map[string]bool)
	for _, o := range r.Outcomes {
		if !seen[o.Category] {
			seen[o.Category] = true
			names = append(names, o.Category)
		}
	}
	return names
}

// ForCategory returns the outcomes of one category in order.
func (r *Result) ForCategory(category string) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Category == category {
			out = append(out, o)
		}
	}
	return out
}
