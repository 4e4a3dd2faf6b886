// Package nlist implements the natively-owned doubly-linked list backing a
// sequence adapter.
//
// The list owns its nodes: a node is created by PushFront/PushBack/
// InsertBefore and destroyed by Remove or Clear. There is no random access;
// At walks from the nearer end. The list performs no locking and no
// marshalling - element values are stored as given.
//
// Allocation is metered through the root package's Allocator so callers can
// bound native memory; one unit is charged per node.
package nlist
