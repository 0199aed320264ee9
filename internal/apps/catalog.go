package apps

import (
	"fmt"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
)

// Builtins returns the installed apps plus the launcher, which is the
// default app and lists every other entry in the catalog.
func Builtins() (*app.Catalog, app.Descriptor, error) {
	catalog, err := app.NewCatalog(
		Flashlight(),
		KeyboardCheck(),
		LogViewer(),
		MemoryMonitor(),
		Settings(),
	)
	if err != nil {
		return nil, app.Descriptor{}, fmt.Errorf("build app catalog: %w", err)
	}
	launcher := Launcher(catalog)
	if err := catalog.Register(launcher); err != nil {
		return nil, app.Descriptor{}, fmt.Errorf("register launcher: %w", err)
	}
	return catalog, launcher, nil
}
