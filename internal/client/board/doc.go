// Package board implements the candidate-pipeline board of one job posting.
//
// # Overview
//
// Store owns the in-memory candidate collection and is the only component
// that mutates it. It talks to a remote Gateway and applies optimistic
// updates:
//
//   - Load replaces the collection; a failing fetch yields an empty board.
//   - Remove and UpdateStatus change local state first and then issue the
//     gateway write without waiting for it (fire-and-forget). Failures are
//     logged and, unless WithRollback is set, not reverted.
//   - Add, SaveDetails and AttachResume wait for the gateway and report
//     failures to the user through a Notifier.
//
// DragController turns a drop gesture (Move) into a stage transition.
// Search filters candidates by name. Editor is a scoped draft over one
// candidate's editable fields, and AddForm is the draft behind the
// "add candidate" panel.
//
// # Concurrency
//
// Store is safe for concurrent use. Local mutation happens synchronously in
// the calling goroutine before any gateway call starts; fire-and-forget
// writes run on their own goroutines and can be awaited with Store.Wait.
// No ordering is guaranteed between two in-flight writes.
package board
