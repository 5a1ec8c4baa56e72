// Package messages exercises every message the generated verification method can report, including the ones for
// values that are not Strobl mocks at all.
package messages
