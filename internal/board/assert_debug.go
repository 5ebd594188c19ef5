//go:build debug

package board

// Debug builds panic on the first invariant violation a mutation introduces.
const panicOnViolationDefault = true
