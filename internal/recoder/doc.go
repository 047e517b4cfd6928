// Package recoder converts election results from party abbreviations to
// numeric codes.
//
// A table is read with every cell as text. Missing cells become Sentinel (6)
// and the abbreviations D, R, I, SR, AI and PR become 0 to 5. The first column
// is the row index and is left untouched. Values outside the mapping pass
// through unchanged, so cleaning an already numeric table is a no-op.
package recoder
