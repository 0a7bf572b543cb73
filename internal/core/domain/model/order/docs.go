// Package order contains the order aggregate: the Order root, the OrderItem
// and HistoryItem lists it owns, the Customer value it owns, the order state
// enum, and the Summary read projection.
//
// The aggregate enforces two structural rules:
//   - the item list is never nil after creation and must not be empty to pass
//     validation; the total price is always derived from the items, never
//     stored;
//   - every state change where the old and new states differ and are both
//     defined appends exactly one history entry recording the new state.
//
// The aggregate does not enforce a transition-legality table: any defined
// state may follow any other. Callers that need a stricter policy guard it
// on their side.
package order
