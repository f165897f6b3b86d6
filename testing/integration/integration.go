// Package integration renders arbor queries through each dialect Writer and
// executes the result against a real database. Every test is gated behind
// the arbor_integration build tag and skips cleanly unless the matching
// environment variable names a connection string — no container runtime is
// required or assumed.
package integration

import (
	"os"

	"github.com/arborsql/arbor/internal/render"
)

// connString returns the connection string for envVar, or "" if unset.
func connString(envVar string) string {
	return os.Getenv(envVar)
}

// values extracts the plain bound values from a bag in append order, for
// handing straight to a driver's Exec/Query variadic args.
func values(bag *render.ArgumentBag) []interface{} {
	all := bag.All()
	out := make([]interface{}, len(all))
	for i, a := range all {
		out[i] = a.Value
	}
	return out
}
