//go:build !debug

package board

// Release builds log the violation and refuse the transition.
const panicOnViolationDefault = false
