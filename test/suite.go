package captest

import (
	"reflect"
	"runtime"
	"testing"

	capability "github.com/ipfs/go-capability"
)

// BasicSubtests is a list of all basic wrapper tests.
var BasicSubtests = []func(t *testing.T, wrap capability.Decorator){
	SubtestNilInner,
	SubtestDelegatesOnce,
	SubtestRepeat,
	SubtestOrdering,
	SubtestRelease,
	SubtestPerformAfterClose,
	SubtestNesting,
	SubtestInnerError,
}

func getFunctionName(i interface{}) string {
	return runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
}

// SubtestAll tests the given wrapper constructor against all the subtests.
// wrap must not emit the marker or base lines used by the suite itself.
func SubtestAll(t *testing.T, wrap capability.Decorator) {
	for _, f := range BasicSubtests {
		t.Run(getFunctionName(f), func(t *testing.T) {
			f(t, wrap)
		})
	}
}
