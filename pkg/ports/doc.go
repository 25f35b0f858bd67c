/*
Package ports defines the driven ports (interfaces) of the brush client.

These interfaces decouple the drawing core from the canvas transport and from
identity persistence, so sessions can run against the HTTP service, the
in-memory canvas, or a test double.

# Key Interfaces

  - Agent: The three primitives a draw session needs (move, color, paint).
  - Canvas: The full remote command surface of the canvas service.
  - IdentityStore: Persists the registered bot identity across runs.
  - DistributedLocker: Guarantees a single draw session per bot across processes.
*/
package ports
