package admin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POSTWithHeaders(path string, body any, headers map[string]string) error
	PUTWithHeaders(path string, body any, headers map[string]string) error
	GET(path string, headers map[string]string) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	GetNamespace() string
	GetAdminToken() string
	GetSavedBufferSize() int
	SetSavedBufferSize(size int)
}

// RegisterSteps registers admin-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &adminSteps{tc: tc}

	ctx.Step(`^I clear my namespace$`, steps.clearNamespace)
	ctx.Step(`^I clear my namespace without admin token$`, steps.clearNamespaceWithoutToken)

	ctx.Step(`^I remember the buffer size$`, steps.rememberBufferSize)
	ctx.Step(`^I set the buffer size to (\d+)$`, steps.setBufferSize)
	ctx.Step(`^I set the buffer size to (\d+) without admin token$`, steps.setBufferSizeWithoutToken)
	ctx.Step(`^I restore the buffer size$`, steps.restoreBufferSize)
}

type adminSteps struct {
	tc TestContext
}

func (s *adminSteps) adminHeaders() map[string]string {
	return map[string]string{
		"X-Admin-Token":    s.tc.GetAdminToken(),
		"X-Admin-Actor-ID": "e2e",
	}
}

func (s *adminSteps) clearNamespace(ctx context.Context) error {
	body := map[string]any{"namespaces": []string{s.tc.GetNamespace()}}
	return s.tc.POSTWithHeaders("/v1/logs/clear", body, s.adminHeaders())
}

func (s *adminSteps) clearNamespaceWithoutToken(ctx context.Context) error {
	body := map[string]any{"namespaces": []string{s.tc.GetNamespace()}}
	return s.tc.POSTWithHeaders("/v1/logs/clear", body, nil)
}

func (s *adminSteps) rememberBufferSize(ctx context.Context) error {
	if err := s.tc.GET("/v1/logs/buffer-size", nil); err != nil {
		return err
	}
	var body struct {
		Size int `json:"size"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &body); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	s.tc.SetSavedBufferSize(body.Size)
	return nil
}

func (s *adminSteps) setBufferSize(ctx context.Context, size int) error {
	return s.tc.PUTWithHeaders("/v1/logs/buffer-size", map[string]any{"size": size}, s.adminHeaders())
}

func (s *adminSteps) setBufferSizeWithoutToken(ctx context.Context, size int) error {
	return s.tc.PUTWithHeaders("/v1/logs/buffer-size", map[string]any{"size": size}, nil)
}

func (s *adminSteps) restoreBufferSize(ctx context.Context) error {
	saved := s.tc.GetSavedBufferSize()
	if saved == 0 {
		return fmt.Errorf("no buffer size remembered")
	}
	if err := s.setBufferSize(ctx, saved); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("restore buffer size: expected 200 but got %d", status)
	}
	return nil
}
