/*
Package orm stores models in a KVStore.

A ModelBucket keeps models of a single type under a common key prefix.
Records can be secondary indexed, every index entry points back to the
primary key of the record. Sequences provide ordered, gap free counters
that are often used to build primary keys preserving insertion order.

There is no delete operation. Records are created and updated only.
*/
package orm
