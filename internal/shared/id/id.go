// Package id provides typed identifiers for kernel objects.
//
// Every app instance the scheduler creates gets a fresh InstanceID, so two
// runs of the same app are always distinguishable in logs and metrics even
// when one launches itself.
package id

import (
	"github.com/google/uuid"
)

// InstanceID identifies one running instantiation of an app
type InstanceID string

// NewInstanceID returns a random, never-reused instance ID
func NewInstanceID() InstanceID {
	return InstanceID(uuid.New().String())
}

// String returns the raw ID
func (i InstanceID) String() string {
	return string(i)
}

// Short returns the first eight characters for compact log lines
func (i InstanceID) Short() string {
	if len(i) <= 8 {
		return string(i)
	}
	return string(i[:8])
}

// Valid reports whether the ID parses as a UUID
func (i InstanceID) Valid() bool {
	_, err := uuid.Parse(string(i))
	return err == nil
}
