// Package seq implements the sequence adapter: the component that exposes a
// borrowed native list as a mutable host-runtime sequence.
//
// Every operation combines list traversal with marshalling. Reads are
// strict about bounds; insert and pop clamp out-of-range indices instead,
// matching the original protocol's documented asymmetry. Iteration works on
// a materialized snapshot so foreign iteration never observes concurrent
// mutation and never holds a live node reference.
//
// Failure never leaves partial mutation behind: a value that cannot be
// converted allocates no node, and a node that cannot be allocated links
// nothing.
package seq
