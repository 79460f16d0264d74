// Package exception implements the process-wide log of failures captured at
// the boundary.
//
// Every wrapped operation that fails appends one Record. The host drains the
// log with Drain (take and clear) or discards it with Clear. The log is
// bounded: each generation holds at most MaxRecords records and drops the
// oldest beyond that, counting drops in Dropped.
//
// # Concurrency
//
// Record may be called from any number of goroutines. Drain swaps the
// current generation for an empty one atomically, so every record is
// returned by exactly one Drain: never lost, never duplicated. Records
// appended while a Drain is in progress land either in the drained
// generation or in the next one.
package exception
