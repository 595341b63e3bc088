// Package cut is the reconciliation engine. It binds incoming edit events
// to stored shots and prior cut items, derives previous and new frame
// values, classifies every entry, groups repeated shots under one shared
// media footprint, and keeps live summary counters for reporting.
//
// The engine is single-threaded by contract. One reconciliation pass owns a
// Summary from the first Add through report generation; mutations queue
// events that the caller drains instead of calling back into it.
package cut
