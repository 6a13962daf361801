// Package reconform is a differential conformance harness for the coregex
// regular expression engine. Each check runs the engine under test on both
// encodings of its input and cross-checks the outcome against the standard
// library's regexp package and against literal expected values.
package reconform
