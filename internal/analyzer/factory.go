package analyzer

import "github.com/standardbeagle/stereotype/internal/model"

// analyzeFactory implements spec §4.7's isFactory/isStrictFactory pair, as
// resolved against the original stereocode source in SPEC_FULL.md §4:
// isFactory holds if at least one return path is a constructor-call
// expression; isStrictFactory holds if every return path is. A method
// with no returns at all is neither.
func analyzeFactory(m *model.Method) {
	if len(m.Returns) == 0 {
		return
	}
	all := true
	any := false
	for _, r := range m.Returns {
		if r.ConstructorCall {
			any = true
		} else {
			all = false
		}
	}
	m.IsFactory = any
	m.IsStrictFactory = any && all
}
