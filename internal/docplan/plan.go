package docplan

// Plan is the ordered, deduplicated list of document jobs for one run.
// Triggered kinds expand to one job per output language; untriggered kinds
// are carried as skipped jobs so the run summary can always account for the
// whole enumeration without collapsing "nothing to do" into "something broke".
type Plan struct {
	Jobs []*Job
}

// BuildPlan expands a classification into jobs. Jobs appear in canonical kind
// order, languages in mode order, so downstream staging and commits are
// reproducible regardless of generation completion order.
func BuildPlan(cl Classification, opts Options) *Plan {
	mode := opts.LanguageMode
	if !mode.Valid() {
		mode = LangEnglish
	}

	p := &Plan{}
	for _, k := range AllKinds() {
		if reason, ok := cl.Triggered[k]; ok {
			for _, lang := range mode.Languages() {
				p.Jobs = append(p.Jobs, &Job{
					Kind:       k,
					Lang:       lang,
					Reason:     reason,
					Status:     StatusPending,
					TargetPath: TargetPath(opts.OutputDir, k, mode, lang),
				})
			}
			continue
		}
		if reason, ok := cl.Skipped[k]; ok {
			p.Jobs = append(p.Jobs, &Job{
				Kind:          k,
				Lang:          string(mode),
				Reason:        reason,
				Status:        StatusSkipped,
				FailureReason: reason,
			})
		}
	}
	return p
}

// Pending returns the jobs awaiting generation, in plan order.
func (p *Plan) Pending() []*Job {
	out := make([]*Job, 0, len(p.Jobs))
	for _, j := range p.Jobs {
		if j.Status == StatusPending {
			out = append(out, j)
		}
	}
	return out
}

// Succeeded returns the jobs with generated content, in plan order.
func (p *Plan) Succeeded() []*Job {
	out := make([]*Job, 0, len(p.Jobs))
	for _, j := range p.Jobs {
		if j.Status == StatusSucceeded {
			out = append(out, j)
		}
	}
	return out
}
