package matcher

import (
	"jselect/internal/domain"
	"jselect/internal/ui/services/registry"
)

// Decision is the filter outcome for one option
type Decision struct {
	Option    *domain.Option
	Visible   bool
	Highlight domain.Span // rune range of the original label, empty when no highlight
}

// Result is the outcome of matching a query against an option list
type Result struct {
	Query     string // normalised query
	Decisions []Decision
	Visible   int
	NoMatch   bool // non-empty query and nothing visible
}

// Highlights returns the non-empty highlight spans keyed by option id
func (r Result) Highlights() map[string]domain.Span {
	out := make(map[string]domain.Span)
	for _, d := range r.Decisions {
		if !d.Highlight.Empty() {
			out[d.Option.ID] = d.Highlight
		}
	}
	return out
}

// Match computes visibility and highlights without mutating the options.
// Selected options keep their hidden flag: filtering never hides them and
// never reveals a selected option hidden by the selection policy.
func Match(query string, options []*domain.Option) Result {
	q := []rune(Normalize(query))
	res := Result{Query: string(q), Decisions: make([]Decision, 0, len(options))}

	for _, o := range options {
		d := Decision{Option: o}
		found := true
		if len(q) > 0 {
			f := fold(o.DisplayLabel())
			if pos := f.index(q); pos >= 0 {
				d.Highlight = domain.Span{Start: f.origin[pos], End: f.origin[pos+len(q)-1] + 1}
			} else {
				found = false
			}
		}
		if o.Selected {
			d.Visible = !o.Hidden
		} else {
			d.Visible = found
		}
		if d.Visible {
			res.Visible++
		}
		res.Decisions = append(res.Decisions, d)
	}
	res.NoMatch = len(q) > 0 && res.Visible == 0
	return res
}

// Apply matches query against every registered option and writes the hidden flags back
func Apply(reg *registry.Service, query string) Result {
	res := Match(query, reg.All())
	for _, d := range res.Decisions {
		reg.SetHidden(d.Option, !d.Visible)
	}
	reg.RecomputeGroups()
	res.Visible = len(reg.Visible())
	res.NoMatch = res.Query != "" && res.Visible == 0
	return res
}
