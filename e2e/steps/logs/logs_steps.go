package logs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string, headers map[string]string) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	GetNamespace() string
}

// RegisterSteps registers log store step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &logSteps{tc: tc}

	ctx.Step(`^I add a "([^"]*)" entry "([^"]*)"$`, steps.addEntry)
	ctx.Step(`^I add (\d+) "([^"]*)" entries$`, steps.addEntries)
	ctx.Step(`^I add an entry with level "([^"]*)"$`, steps.addEntryWithLevel)

	ctx.Step(`^I query my namespace$`, steps.queryAll)
	ctx.Step(`^I query my namespace taking (\d+) after skipping (\d+)$`, steps.queryPage)
	ctx.Step(`^I query my namespace at level "([^"]*)" or above$`, steps.queryLevel)
	ctx.Step(`^I export my namespace$`, steps.export)
	ctx.Step(`^I count entries in my namespace$`, steps.count)

	ctx.Step(`^the response should list messages "([^"]*)"$`, steps.shouldListMessages)
	ctx.Step(`^the response should list no entries$`, steps.shouldListNoEntries)
	ctx.Step(`^sequences in the response should be ascending$`, steps.sequencesAscending)
}

type logSteps struct {
	tc TestContext
}

type entry struct {
	Sequence  uint64 `json:"sequence"`
	LevelName string `json:"level_name"`
	Message   string `json:"message"`
}

func (s *logSteps) add(level, message string) error {
	if err := s.tc.POST("/v1/logs", map[string]any{
		"message":   message,
		"level":     level,
		"namespace": s.tc.GetNamespace(),
	}); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 201 {
		return fmt.Errorf("add %q: expected 201 but got %d: %s", message, status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *logSteps) addEntry(ctx context.Context, level, message string) error {
	return s.add(level, message)
}

func (s *logSteps) addEntries(ctx context.Context, n int, level string) error {
	for i := 1; i <= n; i++ {
		if err := s.add(level, fmt.Sprintf("m%d", i)); err != nil {
			return err
		}
	}
	return nil
}

// addEntryWithLevel leaves the status for the scenario to assert.
func (s *logSteps) addEntryWithLevel(ctx context.Context, level string) error {
	return s.tc.POST("/v1/logs", map[string]any{
		"message":   "probe",
		"level":     level,
		"namespace": s.tc.GetNamespace(),
	})
}

func (s *logSteps) query(body map[string]any) error {
	body["namespaces"] = []string{s.tc.GetNamespace()}
	return s.tc.POST("/v1/logs/query", body)
}

func (s *logSteps) queryAll(ctx context.Context) error {
	return s.query(map[string]any{})
}

func (s *logSteps) queryPage(ctx context.Context, take, prev int) error {
	return s.query(map[string]any{"take": take, "prev": prev})
}

func (s *logSteps) queryLevel(ctx context.Context, level string) error {
	return s.query(map[string]any{"level": level})
}

func (s *logSteps) export(ctx context.Context) error {
	return s.tc.POST("/v1/logs/export", map[string]any{"namespaces": []string{s.tc.GetNamespace()}})
}

func (s *logSteps) count(ctx context.Context) error {
	return s.tc.GET("/v1/logs/size?namespace="+url.QueryEscape(s.tc.GetNamespace()), nil)
}

// entries reads either a query ("entries") or an export ("exported") body.
func (s *logSteps) entries() ([]entry, error) {
	var body struct {
		Entries  []entry `json:"entries"`
		Exported []entry `json:"exported"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if body.Exported != nil {
		return body.Exported, nil
	}
	return body.Entries, nil
}

func (s *logSteps) shouldListMessages(ctx context.Context, csv string) error {
	got, err := s.entries()
	if err != nil {
		return err
	}
	messages := make([]string, 0, len(got))
	for _, e := range got {
		messages = append(messages, e.Message)
	}
	if strings.Join(messages, ",") != csv {
		return fmt.Errorf("expected messages %s but got %s", csv, strings.Join(messages, ","))
	}
	return nil
}

func (s *logSteps) shouldListNoEntries(ctx context.Context) error {
	got, err := s.entries()
	if err != nil {
		return err
	}
	if len(got) != 0 {
		return fmt.Errorf("expected no entries but got %d", len(got))
	}
	return nil
}

func (s *logSteps) sequencesAscending(ctx context.Context) error {
	got, err := s.entries()
	if err != nil {
		return err
	}
	for i := 1; i < len(got); i++ {
		if got[i].Sequence <= got[i-1].Sequence {
			return fmt.Errorf("sequence %d follows %d", got[i].Sequence, got[i-1].Sequence)
		}
	}
	return nil
}
