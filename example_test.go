package thompson_test

import (
	"errors"
	"fmt"

	"github.com/coregx/thompson"
	"github.com/coregx/thompson/postfix"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := thompson.Compile("a(b|c)*d")
	if err != nil {
		panic(err)
	}

	fmt.Println(re.MatchString("abcbd"))
	fmt.Println(re.MatchString("abcbdx"))
	// Output:
	// true
	// false
}

// ExampleCompile_error shows how syntax errors are reported.
func ExampleCompile_error() {
	_, err := thompson.Compile("a|")
	fmt.Println(errors.Is(err, postfix.ErrTrailingAlternation))
	fmt.Println(thompson.IsSyntaxError(err))
	// Output:
	// true
	// true
}

// ExampleMustCompile demonstrates panic-on-error compilation.
func ExampleMustCompile() {
	re := thompson.MustCompile("(ab)+")
	fmt.Println(re.MatchString("ababab"))
	fmt.Println(re.MatchString("aba"))
	// Output:
	// true
	// false
}

// ExampleRegex_Postfix shows the postfix program behind a pattern.
func ExampleRegex_Postfix() {
	re := thompson.MustCompile("a(b|c)*d")
	fmt.Println(re.Postfix())
	// Output: abc|*.d.
}

// ExampleRegex_Strategy shows strategy selection for different patterns.
func ExampleRegex_Strategy() {
	for _, p := range []string{"a?b", "(x|y)*world", "a*"} {
		fmt.Printf("%s: %s\n", p, thompson.MustCompile(p).Strategy())
	}
	// Output:
	// a?b: UseExactSet
	// (x|y)*world: UsePrefilter
	// a*: UseNFA
}

// ExampleCompileWithConfig disables the fast paths, leaving the Pike VM.
func ExampleCompileWithConfig() {
	config := thompson.DefaultConfig()
	config.EnableExactSet = false
	config.EnablePrefilter = false

	re, err := thompson.CompileWithConfig("abc", config)
	if err != nil {
		panic(err)
	}
	fmt.Println(re.Strategy(), re.MatchString("abc"))
	// Output: UseNFA true
}
