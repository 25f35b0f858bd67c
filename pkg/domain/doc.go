/*
Package domain contains the core value types of the brush paint-bot client.

It defines the vocabulary shared by the curve generators, the movement
planner and the drawing session. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Position: An integer cell on the unbounded canvas grid.
  - Location: A Position that may not be established yet (Known or Unknown).
  - Direction / MoveStep: Axis-aligned unit moves, optionally repeated.
  - CurveSample: A grid Position plus the curve parameter that produced it.
  - Color: One of the 16 palette tokens understood by the canvas service.
  - AgentState: The last state reported by the remote agent.
*/
package domain
