/*
Package malloc provides a process-wide allocator with a C-style API.

The first call creates a single mem.Safe arena with mem.DefaultConfig. All
later calls share it, so blocks may be freed from any goroutine.

# Basic Usage

	b := malloc.Malloc(200)
	copy(b, payload)
	malloc.Free(b)

Malloc(0) returns nil and Free(nil) does nothing. Corruption detected by Free
(double free, overwritten header or footer, a slice Malloc did not return)
terminates the process.

Programs that need their own thresholds, a custom Mapper or a recoverable
fatal hook should create a mem.Arena directly.
*/
package malloc
