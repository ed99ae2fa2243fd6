// Package supervisor manages the lifecycle of a rigctld process.
//
// Spawn resolves the executable, starts it in its own process group and
// polls the listen port until it accepts a connection. The returned Handle
// tracks the process through a small state machine:
//
//	NotStarted -> Starting -> Ready -> Stopping -> Stopped
//	                       \-> StartFailed
//	                           Ready -> Crashed -> Stopping -> Stopped
//
// Stop sends SIGTERM to the process group, waits for the grace period and
// then sends SIGKILL. Port ownership is not enforced; two spawns on the same
// port both reach Ready as long as the first daemon answers the probe.
// Callers that need exclusivity hold a LockPort lock around the lifecycle.
package supervisor
