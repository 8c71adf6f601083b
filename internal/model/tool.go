package model

import "fmt"

// Tool is the interaction mode that decides how a gesture is interpreted.
type Tool string

const (
	ToolPen    Tool = "pen"
	ToolEraser Tool = "eraser"
	ToolText   Tool = "text"
	ToolHand   Tool = "hand"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolPen, ToolEraser, ToolText, ToolHand}

// ElementType returns the element type a tool creates. Eraser and hand are
// interaction modes and report false.
func (t Tool) ElementType() (ElementType, bool) {
	switch t {
	case ToolPen:
		return ElementPen, true
	case ToolText:
		return ElementText, true
	}
	return "", false
}

// ParseTool converts a tool name into a Tool.
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tool %q", s)
}
