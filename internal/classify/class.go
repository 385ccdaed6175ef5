package classify

import (
	"github.com/samber/lo"

	"github.com/standardbeagle/stereotype/internal/model"
)

// Class runs the ratio-based rule table of spec §4.7 against c, appending
// labels to c.Stereotypes. methodsPerClassThreshold gates large-class
// (config default 21, spec §6).
func Class(c *model.Class, methodsPerClassThreshold int) {
	nonCtorDtor := lo.Filter(c.Methods, func(m *model.Method, _ int) bool {
		return !m.IsConstructorDtor
	})
	total := len(nonCtorDtor)

	counts := countByLabel(nonCtorDtor)
	M := total

	getters := counts["get"]
	setters := counts["set"]
	commands := counts["command"] + counts["non-void-command"]
	accessors := getters + counts["predicate"] + counts["property"] + counts["void-accessor"]
	mutators := setters + commands
	controllers := counts["controller"]
	collabOnly := counts["collaborator"] + counts["wrapper"]
	collaborators := controllers + collabOnly
	factories := counts["factory"]
	degenerates := counts["incidental"] + counts["stateless"] + counts["empty"]

	nonCollaborators := lo.CountBy(nonCtorDtor, func(m *model.Method) bool {
		return !hasAny(m.Stereotypes, "collaborator", "controller", "wrapper")
	})

	ratio := func(num, den int) (float64, bool) {
		if den == 0 {
			return 0, false
		}
		return float64(num) / float64(den), true
	}

	if M == 0 {
		c.AddStereotype("empty")
		return
	}

	if (accessors-getters) > 0 && (mutators-setters) > 0 && controllers == 0 {
		if r, ok := ratio(collaborators, nonCollaborators); ok && r >= 2 {
			c.AddStereotype("entity")
		}
	}

	if M-(getters+setters+commands) == 0 && getters > 0 && setters > 0 && commands > 0 {
		if r, ok := ratio(collaborators, nonCollaborators); ok && r >= 2 {
			c.AddStereotype("minimal-entity")
		}
	}

	if accessors > 2*mutators && accessors > 2*(controllers+factories) {
		c.AddStereotype("data-provider")
	}

	if mutators > 2*accessors && mutators > 2*(controllers+factories) {
		c.AddStereotype("commander")
	}

	if collaborators > nonCollaborators &&
		float64(factories) < 0.5*float64(M) &&
		float64(controllers) < 0.33*float64(M) {
		c.AddStereotype("boundary")
	}

	if float64(factories) > 0.67*float64(M) {
		c.AddStereotype("factory")
	}

	if float64(controllers+factories) > 0.67*float64(M) && (accessors > 0 || mutators > 0) {
		c.AddStereotype("controller")
	}

	if controllers+factories > 0 && accessors+mutators+collabOnly == 0 && controllers > 0 {
		c.AddStereotype("pure-controller")
	}

	if 0.2*float64(M) < float64(accessors+mutators) && float64(accessors+mutators) < 0.67*float64(M) &&
		0.2*float64(M) < float64(controllers+factories) && float64(controllers+factories) < 0.67*float64(M) &&
		factories > 0 && controllers > 0 && accessors > 0 && mutators > 0 &&
		M > methodsPerClassThreshold {
		c.AddStereotype("large-class")
	}

	if getters+setters > 0 {
		if r, ok := ratio(degenerates, M); ok && r > 0.33 {
			if r2, ok2 := ratio(M-(degenerates+getters+setters), M); ok2 && r2 <= 0.2 {
				c.AddStereotype("lazy-class")
			}
		}
	}

	if r, ok := ratio(degenerates, M); ok && r > 0.5 {
		c.AddStereotype("degenerate")
	}

	if M-(getters+setters) == 0 && getters+setters > 0 {
		c.AddStereotype("data-class")
	}

	if M > 0 && M < 3 {
		c.AddStereotype("small-class")
	}

	if len(c.Stereotypes) == 0 {
		c.AddStereotype("unclassified")
	}
}

func countByLabel(methods []*model.Method) map[string]int {
	counts := map[string]int{}
	for _, m := range methods {
		for _, s := range m.Stereotypes {
			counts[s]++
		}
	}
	return counts
}

func hasAny(labels []string, wanted ...string) bool {
	for _, l := range labels {
		for _, w := range wanted {
			if l == w {
				return true
			}
		}
	}
	return false
}
