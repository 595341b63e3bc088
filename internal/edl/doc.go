// Package edl reads CMX3600-style change lists into ordered edit events.
//
// Only the subset a cut reconciliation needs is interpreted: the event
// number, reel, source and record timecode ranges, the clip name comment and
// the shot name comment. Everything else in the file is ignored. Events keep
// their file order, which is also their cut order.
//
// Shot names follow the convention that a comment line of the form
// "* COMMENT: SH010" (preferred) or a bare "* SH010" names the shot for the
// preceding event, and the clip name carries the version name with its file
// extension stripped. An event naming neither a shot nor a clip is an error,
// since nothing downstream could identify it.
package edl
