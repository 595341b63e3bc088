// Package reconcile drives a full reconciliation pass: it resolves edit
// events against stored versions, shots and the prior cut, builds the cut
// summary, and optionally imports the result as a new cut revision with
// shot write-backs and a change notification.
package reconcile
