// Package preflight validates the environment before a remux runs:
// external binaries, target directory permissions, free disk space, and
// the primary/target container extension rule.
package preflight
