// Package errors provides structured, coded errors for vtree.
//
// Every failure surfaced at a package boundary carries a stable code
// (e.g. "V100") that maps to a category, a short message and a longer
// explanation:
//
//	err := errors.New(errors.CodeInvalidNode).
//	    WithDetailf("element with empty tag at %s", path).
//	    WithSuggestion("Construct elements with vdom.El(tag, ...)")
//
//	fmt.Println(err.Format())
//
// Errors compare equal under errors.Is when their codes match, so callers
// can test against the sentinel values exported by the packages that
// create them.
package errors
