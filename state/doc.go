// Package state provides a small observable value container.
//
// A Value holds one snapshot at a time. Every Set replaces the snapshot and
// notifies the registered listeners in registration order, so listeners
// observe snapshots in exactly the order they were set. Listeners may call
// Set; the nested snapshot is delivered after the current one.
package state
