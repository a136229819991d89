package config

import (
	"os"
	"testing"
)

// TestMain runs before all tests in the config package. Config tests
// only ever connect to throwaway or unreachable databases, so GO_ENV is
// defaulted to test instead of failing outright.
func TestMain(m *testing.M) {
	if os.Getenv("GO_ENV") == "" {
		os.Setenv("GO_ENV", "test")
	}
	os.Exit(m.Run())
}
