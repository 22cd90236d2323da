package encode

// strategy rewrites a failed attempt's plan into the next one to try. Apply
// reports false when the rewrite would not change anything, in which case the
// orchestrator skips to the next strategy without burning an attempt.
type strategy struct {
	Name  string
	Apply func(plan) (plan, bool)
}

// defaultStrategies is the fallback ladder, tried strictly in order after the
// primary attempt fails. Each strategy fires at most once per job.
func defaultStrategies() []strategy {
	return []strategy{
		{
			Name: "force-reencode",
			Apply: func(p plan) (plan, bool) {
				if !p.AudioCopy {
					return p, false
				}
				p.AudioCopy = false
				return p, true
			},
		},
		{
			Name: "drop-audio",
			Apply: func(p plan) (plan, bool) {
				if !p.Graph.WithAudio {
					return p, false
				}
				p.Graph = p.Graph.WithoutAudio()
				p.AudioCopy = false
				return p, true
			},
		},
		{
			Name: "plain-concat",
			Apply: func(p plan) (plan, bool) {
				if p.Graph.TransitionCount() == 0 {
					return p, false
				}
				p.Graph = p.Graph.StripTransitions()
				return p, true
			},
		},
	}
}
