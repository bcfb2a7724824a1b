/*
Package dat provides a double-array trie (DAT): a compact, static,
array-encoded representation of a keyed map supporting fast exact-match
lookup of byte-string keys to one or more associated values.

Uses

- Read-heavy lookup tables too large or too hot-path for a Go map's
pointer-chasing buckets

- Dictionaries compiled once, queried many times, and optionally shipped
as a single content-addressed blob to a file or object store

- Multi-valued keys where insertion order of values must be preserved


What is a DAT

A double-array trie encodes every trie edge as an arithmetic relationship
between two parallel integer arrays, BASE and CHECK, rather than as a
pointer. Descending an edge labelled by byte c from the node at index i
means checking that CHECK[BASE[i]+c] == i, and if so moving to index
BASE[i]+c. This makes the walk down the trie a tight loop over array
reads with no allocation and no pointer chasing, at the cost of a non-trivial build-time
placement algorithm (see the Aoe double-array construction this package
implements in compile.go) that must find, for every node, a base offset
under which every child lands on a currently free slot.

Building is a two-phase process: entries are inserted into a Trie, an
ordinary node-based structure tolerant of repeated keys and cheap
insertion; then ToDoubleArray walks it breadth-first and compiles it into
an immutable DoubleArray. The DoubleArray is the only object needed
afterward; the Trie can be discarded.

Concurrency

A DoubleArray is immutable once built. Any number of goroutines may call
Get concurrently with no synchronization. Building is single-threaded;
there is no API for concurrent mutation of a Trie, mid-build
cancellation, or incremental rebuild of an existing DoubleArray.

Inspiration

Jun-ichi Aoe, "An Efficient Digital Search Algorithm by Using a Double-
Array Structure", IEEE Transactions on Software Engineering, 1989 is the
classic reference for the construction algorithm this package implements.
*/
package dat
