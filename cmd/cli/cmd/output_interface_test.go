package cmd

import (
	"testing"

	"github.com/runvoy/sitedeploy/internal/deployer"

	"github.com/stretchr/testify/assert"
)

func TestNewOutputWrapper(t *testing.T) {
	wrapper := NewOutputWrapper()
	assert.NotNil(t, wrapper)
}

func TestOutputWrapperImplementsInterface(_ *testing.T) {
	var _ OutputInterface = &outputWrapper{}
	var _ deployer.Reporter = NewOutputWrapper()
}

func TestOutputWrapper_Bold(t *testing.T) {
	wrapper := NewOutputWrapper()
	result := wrapper.Bold("test")
	assert.Contains(t, result, "test")
}

func TestOutputWrapper_Cyan(t *testing.T) {
	wrapper := NewOutputWrapper()
	result := wrapper.Cyan("test")
	assert.Contains(t, result, "test")
}

// mockOutputInterface is a manual mock for testing
type mockOutputInterface struct {
	calls []call
}

type call struct {
	method string
	args   []any
}

func (m *mockOutputInterface) Infof(format string, a ...any) {
	m.calls = append(m.calls, call{method: "Infof", args: []any{format, a}})
}
func (m *mockOutputInterface) Errorf(format string, a ...any) {
	m.calls = append(m.calls, call{method: "Errorf", args: []any{format, a}})
}
func (m *mockOutputInterface) Successf(format string, a ...any) {
	m.calls = append(m.calls, call{method: "Successf", args: []any{format, a}})
}
func (m *mockOutputInterface) Warningf(format string, a ...any) {
	m.calls = append(m.calls, call{method: "Warningf", args: []any{format, a}})
}
func (m *mockOutputInterface) Step(step, total int, message string) {
	m.calls = append(m.calls, call{method: "Step", args: []any{step, total, message}})
}
func (m *mockOutputInterface) StepSuccess(step, total int, message string) {
	m.calls = append(m.calls, call{method: "StepSuccess", args: []any{step, total, message}})
}
func (m *mockOutputInterface) StepError(step, total int, message string) {
	m.calls = append(m.calls, call{method: "StepError", args: []any{step, total, message}})
}
func (m *mockOutputInterface) Table(headers []string, rows [][]string) {
	m.calls = append(m.calls, call{method: "Table", args: []any{headers, rows}})
}
func (m *mockOutputInterface) Blank() {
	m.calls = append(m.calls, call{method: "Blank", args: []any{}})
}
func (m *mockOutputInterface) Bold(text string) string {
	return text
}
func (m *mockOutputInterface) Cyan(text string) string {
	return text
}
func (m *mockOutputInterface) KeyValue(key, value string) {
	m.calls = append(m.calls, call{method: "KeyValue", args: []any{key, value}})
}
func (m *mockOutputInterface) Box(text string) {
	m.calls = append(m.calls, call{method: "Box", args: []any{text}})
}

// keyValues collects the KeyValue calls into a map.
func (m *mockOutputInterface) keyValues() map[string]string {
	kv := make(map[string]string)
	for _, c := range m.calls {
		if c.method == "KeyValue" && len(c.args) == 2 {
			kv[c.args[0].(string)] = c.args[1].(string)
		}
	}
	return kv
}

func (m *mockOutputInterface) called(method string) bool {
	for _, c := range m.calls {
		if c.method == method {
			return true
		}
	}
	return false
}
