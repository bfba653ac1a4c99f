// Package access is the gate every mutation and report passes through. It
// maps an Actor's Role onto a fixed capability table; the two super-only
// actions (BlockUser and RunBlockedUsersReport) are listed explicitly.
package access
