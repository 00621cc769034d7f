// Package emit turns an ordered entry list into the output tree: sequentially
// numbered copies (0001.mp3, 0002.wav, ...) plus a C header whose #define
// lines map each base name to its track number.
//
// Write is the only function that mutates the filesystem. It holds an
// advisory lock beside the output directory for the duration of the run,
// recreates the directory, copies every file, and finally swaps the header
// into place atomically.
package emit
