// Package store resolves a raw loot document into the cross-linked model of
// package loot and owns the result.
//
// A build runs in three passes over in-memory records:
//
//  1. Templates: probability templates (first block only) and every quality
//     template are resolved into one namespace.
//  2. Registry: every group and every non-ignored container is registered
//     by name as an empty placeholder, so later lookups never depend on
//     declaration order.
//  3. Graph: each container is walked depth-first in declared entry order.
//     Item entries become instances of a shared canonical Item; group
//     entries become GroupReference edges recorded on both endpoints, and
//     the child is built recursively. A group that already holds items or
//     references is not built again, which keeps shared and cyclic
//     sub-groups finite.
//
// Construction is all-or-nothing: Build returns either a complete Store or
// an error. Anomalies the build tolerates (duplicate items within a group,
// item entries citing a missing template, ...) are kept as Diagnostics and
// logged at warn level.
//
// A built Store is never mutated and is safe for concurrent readers.
package store
