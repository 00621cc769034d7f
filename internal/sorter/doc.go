// Package sorter wires discovery, validation, ranking, and emission into the
// single-pass renumbering run.
//
// Plan performs every read-only step and returns the mapping a run would
// produce; Run executes Plan and then hands the mapping to the emitter. All
// validation happens inside Plan, so a rejected name or macro never reaches
// the output side.
package sorter
