// Package kernel provides the value objects shared by the courier and order aggregates.
//
// The package includes:
//   - ID: the int64 identity of couriers and orders
//   - IDAllocator: a monotonic, mutex-guarded id source, one instance per entity kind
//   - TimeWindow: a same-day "HH:MM-HH:MM" interval used for working and delivery hours
//
// Values are immutable once constructed. IDAllocator is the only stateful type here
// and is safe for concurrent use.
package kernel
