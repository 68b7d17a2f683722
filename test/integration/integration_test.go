//go:build integration

// Package integration runs the ledger API feature files end to end.
package integration

import (
	"os"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/slogsolutions/Audit-Management-Platform/test/integration/steps"
)

// TestFeatures runs every scenario under features/. Scenarios share one
// database and one Redis, so they must run one at a time.
func TestFeatures(t *testing.T) {
	format := "pretty"
	if os.Getenv("CI") != "" {
		format = "progress"
	}

	opts := godog.Options{
		Format:      format,
		Paths:       []string{"features"},
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1,
		Strict:      true,
		TestingT:    t,
		Tags:        strings.TrimSpace(os.Getenv("GODOG_TAGS")),
	}

	status := godog.TestSuite{
		Name:                 "expense-ledger-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &opts,
	}.Run()

	if status != 0 {
		t.Fatalf("feature suite exited with status %d", status)
	}
}
