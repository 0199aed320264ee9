// Package apps holds the built-in apps and the catalog that installs them.
//
// Every app draws through the app.System facade it was built with and keeps
// all of its state on its own instance. Nothing survives a switch.
package apps
