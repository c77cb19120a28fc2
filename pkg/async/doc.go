// Package async provides generic helpers for running computations
// asynchronously and waiting for their completion.
//
// The package is centred around the generic type Future that represents the
// eventual result of an asynchronous operation. A Future is obtained by
// calling Async, which starts the supplied function in its own goroutine and
// immediately returns a *Future. The caller can then wait for completion
// with Await, block with a timeout using AwaitWithTimeout, or poll the state
// with IsComplete.
//
// Settle coordinates multiple concurrent tasks with join-all semantics: it
// waits for every future and collects every result and error, index-aligned
// with the input. This is the building block for fan-out dispatch where
// sibling tasks must be allowed to finish regardless of one another's
// outcome.
//
// All helpers are context-aware: if the provided context is cancelled before
// the computation starts, the Future completes with the context error
// without running the callback.
package async
