// Package ranking assigns sort priorities to audio files.
//
// Custom ordering ranks a file by its first two tokens: the first token's
// position in the primary tag list and the second token's position in the
// secondary list, combined as primary*100 + secondary. Tags missing from a
// list rank at the list's length. Files with fewer than two tokens get an
// infinite priority and sink to the end. Without custom ordering every file
// keeps its enumeration index. Sorting is stable in both cases, so ties keep
// directory order.
package ranking
