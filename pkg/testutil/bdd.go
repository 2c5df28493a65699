package testutil

import "testing"

// Given, When and Then wrap subtests so scenario-style tests (a registrant
// walking the chat flow, an admin hitting the fee-table API) read as
// sentences in `go test -v` output. Each is just a named t.Run; there is no
// framework behind them.

func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+desc, fn)
}
