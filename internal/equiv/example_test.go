package equiv_test

import (
	"context"
	"fmt"

	"github.com/sleepypower/circuit-simplifier/internal/equiv"
)

func ExampleAreEquivalent() {
	ok, err := equiv.AreEquivalent("(A | B) & (A | C)", "A | (B & C)", []string{"A", "B", "C"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ok)
	// Output:
	// true
}

func ExampleChecker_CheckStrings() {
	c := equiv.NewChecker(equiv.Options{Strategy: equiv.TruthTable})
	r, err := c.CheckStrings(context.Background(), "A >> B", "B >> A", []string{"A", "B"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(r.Result)
	fmt.Println(r.Counterexample["A"], r.Counterexample["B"])
	// Output:
	// not equivalent
	// true false
}
