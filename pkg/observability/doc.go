/*
Package observability turns draw session hooks into Prometheus metrics.

Metrics.Hooks returns domain.CommandHooks that count issued commands,
failures and phase changes and record command latency. Chain merges several
hook sets so metrics can run next to other observers.
*/
package observability
