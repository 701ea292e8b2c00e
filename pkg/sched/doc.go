// Package sched provides the single-threaded two-phase task queue used to
// batch component updates.
//
// A Scheduler holds two queues:
//
//   - the immediate queue, drained completely before any deferred task runs
//     and again after every deferred task;
//   - the deferred queue, whose tasks queued before a turn starts run once
//     during that turn, in insertion order.
//
// Tasks deferred while a turn is running are executed by the next turn.
// Component instances schedule their optional effect on the immediate queue
// and their coalesced re-render on the deferred queue, so an effect always
// runs before the render it belongs to.
//
// The queues accept work from any goroutine. Tasks themselves only run on
// the goroutine calling Turn, Flush or Run.
package sched
