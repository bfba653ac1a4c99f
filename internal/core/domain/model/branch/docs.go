// Package branch holds the Branch entity and the configurable policy that
// guards its hard deletion.
package branch
