// Package devices is the table of known device profiles.
//
// A profile is selected by name once at boot. Profiles build their drivers
// only when the kernel asks for them.
package devices
