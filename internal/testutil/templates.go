package testutil

import (
	"sync"
	"testing"

	"github.com/dalemusser/lordsadmin/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var (
	bootOnce sync.Once
	bootErr  error
)

// BootTemplates compiles every template set registered so far (the shared
// layout plus the sets the calling test package's init functions added) and
// installs the engine that templates.Render uses. The first call in a test
// binary does the work; later calls reuse it.
func BootTemplates(t *testing.T) {
	t.Helper()
	bootOnce.Do(func() {
		resources.LoadSharedTemplates()
		eng := templates.New(false)
		if bootErr = eng.Boot(zap.NewNop()); bootErr != nil {
			return
		}
		templates.UseEngine(eng, zap.NewNop())
	})
	if bootErr != nil {
		t.Fatalf("templates boot: %v", bootErr)
	}
}
