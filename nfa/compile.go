package nfa

import "github.com/coregx/thompson/postfix"

// Compile converts pattern to postfix and builds its NFA.
//
// Errors are returned as *CompileError; errors.Is reports both the postfix
// syntax kinds (postfix.ErrSyntax and friends) and the build kinds.
func Compile(pattern string) (*NFA, error) {
	prog, err := postfix.ConvertString(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	n, err := Build(prog)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return n, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *NFA {
	n, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return n
}
