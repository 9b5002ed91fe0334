package e2e

import (
	"github.com/cucumber/godog"

	"logvault/e2e/steps/admin"
	"logvault/e2e/steps/common"
	"logvault/e2e/steps/logs"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	logs.RegisterSteps(ctx, tc)
	admin.RegisterSteps(ctx, tc)
}
