// Package listener broadcasts resolution lifecycle events to registered
// listeners. One Manager is shared by every configuration of a project.
package listener
