package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// Test binaries log at trace level, but only print with -v.
func init() {
	logrus.SetLevel(logrus.TraceLevel)

	for _, arg := range os.Args {
		if arg == "-test.v=true" {
			return
		}
	}
	logrus.StandardLogger().Out = io.Discard
}

// CaptureLogs records entries written to the standard logger until the test
// ends. Tests using it must not run in parallel.
func CaptureLogs(t *testing.T) *test.Hook {
	hook := test.NewLocal(logrus.StandardLogger())
	t.Cleanup(func() {
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	})
	return hook
}
