/*
Package draw drives a remote agent along generated curves.

A Session owns one agent and the last AgentState it returned. Commands are
issued strictly one after another and every command observes the state
produced by the previous one. The first failure aborts the running
operation and is returned unchanged in the error chain; the session keeps
the last good state so callers can decide how to recover.

# Phases

	Uninitialized -> Positioned -> Drawing -> Finished

A session is Positioned as soon as the agent reports a known position,
Drawing once it starts painting curve samples and Finished after Finish.
*/
package draw
