package hal

import "github.com/GriffinCanCode/SlimeOS/internal/shared/keycode"

// Input answers key-state queries. Keys must return one consistent view of
// every requested code.
type Input interface {
	Key(code keycode.Code) bool
	Keys(codes []keycode.Code) map[keycode.Code]bool
}

// StateClearer is implemented by inputs that latch presses; the kernel
// clears them on every app switch so a key that launched an app is not
// seen again by the app it launched.
type StateClearer interface {
	ClearState()
}

// PressedLister is implemented by inputs that can list held keys without
// consuming latched presses.
type PressedLister interface {
	Pressed() []keycode.Code
}
