// Package segment splits a document into independently wrapped and
// independently indented segments (blocks).
//
// A segment owns one text store entry. Its text is kept with the segment's
// indentation stripped; Indent records how many columns the segment is
// shifted right on screen and WrapAt how many characters fit in a row.
// Set bundles the text store, the visual line index and the segments so
// that every structural operation sees all three consistently.
package segment
