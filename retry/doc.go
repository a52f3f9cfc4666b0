// Package retry implements bounded retries with exponential backoff.
//
// Execute calls an operation until it succeeds, fails with an error the
// classifier reports as permanent, or runs out of attempts. Before retry n
// (counting from 0) it sleeps 2^n * base delay.
package retry
