// Package item contains the Item aggregate and its lifecycle state machine.
// An item is a single physical unit moving from intake through delivery; its
// status advances forward only, through the transition table defined in status.go.
package item
