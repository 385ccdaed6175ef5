package analyzer

import "github.com/standardbeagle/stereotype/internal/types"

// ignoredCalls is the per-language, per-call-name set of spec §4.4's
// "ignored calls": calls that never count toward any call counter,
// classified via a bare/simple-name match against the callee.
var ignoredCalls = map[types.Language]map[string]struct{}{
	types.CPP: setOf(
		"move", "std::move", "forward", "std::forward",
		"sizeof", "typeid", "static_cast", "dynamic_cast",
		"const_cast", "reinterpret_cast",
		"printf", "fprintf", "sprintf", "cout", "cerr",
	),
	types.CSharp: setOf(
		"nameof", "typeof", "GetType",
		"WriteLine", "Write", "Console.WriteLine", "Console.Write",
		"Debug.WriteLine", "Trace.WriteLine",
	),
	types.Java: setOf(
		"getClass",
		"println", "print", "System.out.println", "System.out.print",
		"System.err.println",
	),
}

func setOf(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// IsIgnored reports whether callee (as written at the call site, receiver
// included) matches an ignored call for lang.
func IsIgnored(callee string, lang types.Language) bool {
	set, ok := ignoredCalls[lang]
	if !ok {
		return false
	}
	if _, hit := set[callee]; hit {
		return true
	}
	// Also match on the bare trailing identifier, so a qualified call such as
	// "std::move" is caught by a bare "move" entry. A bare call is matched
	// only by a bare entry, never by a qualified one.
	if simple := lastSegment(callee); simple != callee {
		_, hit := set[simple]
		return hit
	}
	return false
}
