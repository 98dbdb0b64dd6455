package keyboard

import (
	"fmt"
	"strings"
)

// Callback actions
const (
	ActionMode   = "mode"   // value: interview mode
	ActionAct    = "act"    // value: one of the Act* values
	ActionReport = "report" // value: result format
)

const (
	ActStart = "start"
	ActSkip  = "skip"
	ActRetry = "retry"
	ActNew   = "new"
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	action, value, ok := strings.Cut(data, ":")
	if !ok || action == "" {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: action,
		Value:  value,
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}
