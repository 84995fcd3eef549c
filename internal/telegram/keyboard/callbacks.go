package keyboard

import (
	"fmt"
	"strings"
)

// Callback actions used by the bot's inline buttons.
const (
	ActionCommand  = "action" // start_dialog, help
	ActionAnswer   = "answer" // yes, no
	ActionDownload = "dl"     // markdown, pdf, docx
)

const (
	ValueStartDialog = "start_dialog"
	ValueHelp        = "help"
	ValueYes         = "yes"
	ValueNo          = "no"
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}
