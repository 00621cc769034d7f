// Package fault defines the error markers shared by every pipeline stage.
//
// Stage code wraps failures with Wrap so messages carry the stage and
// operation that failed while errors.Is still recognises the marker. The CLI
// relies on the markers to decide how much detail to print before exiting.
package fault
