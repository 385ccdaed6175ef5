// Package version holds the stereotype engine's build identity.
package version

// Version is the current semantic version of the classification engine.
const Version = "0.1.0"
