// Package retry provides the two waiting strategies used against the control
// plane.
//
// [WithExponentialBackoff] retries an idempotent request that failed
// transiently, doubling the delay between attempts. Errors wrapped with
// [Fatal] stop it immediately.
//
// [Poll] checks a condition a bounded number of times at a fixed interval and
// reports [ErrExhausted] when the budget runs out.
package retry
