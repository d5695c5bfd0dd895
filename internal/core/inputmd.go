package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/daybook-sh/daybook/pkg/models"
)

// InputMeta is the metadata embedded alongside each rendered input so the
// collector can map extracted values back to items without re-deriving the
// report layout.
type InputMeta struct {
	ComponentID  string           `json:"componentId"`
	ItemID       string           `json:"itemId"`
	Type         models.InputType `json:"type"`
	Label        string           `json:"label,omitempty"`
	SingleChoice bool             `json:"singleChoice,omitempty"`
}

func metaSpan(class string, meta InputMeta) string {
	raw, _ := json.Marshal(meta)
	return fmt.Sprintf("<span class=%q data-meta='%s'></span>", class, raw)
}

// openMarker starts an input region. Everything until the matching end
// marker is owned by the extractor.
func openMarker(meta InputMeta) string {
	return metaSpan("mdc-input", meta)
}

func endMarker(meta InputMeta) string {
	return metaSpan("mdc-input-end", InputMeta{ComponentID: meta.ComponentID, ItemID: meta.ItemID})
}

// hiddenValue embeds a machine-readable option value that survives the user
// checking boxes in a rendered markdown view.
func hiddenValue(value string) string {
	return fmt.Sprintf("<span class=\"mdc-hidden-value\" data-value=%q></span>", value)
}

// RenderInput renders the markdown block for one item input, wrapped in
// marker spans the extractor recognizes. Unknown input types render as plain
// text inputs so a misconfigured item degrades instead of breaking the report.
func RenderInput(componentID string, item models.Item) string {
	meta := InputMeta{
		ComponentID:  componentID,
		ItemID:       item.ID,
		Type:         item.Input.Type,
		Label:        item.Input.Label,
		SingleChoice: item.Input.SingleChoice,
	}

	var b strings.Builder
	b.WriteString(openMarker(meta))
	b.WriteString("\n")

	switch item.Input.Type {
	case models.InputBoolean:
		label := item.Input.Label
		if label == "" {
			label = item.Label
		}
		fmt.Fprintf(&b, "- [ ] %s\n", label)

	case models.InputNumber:
		label := item.Input.Label
		if label == "" {
			label = item.Label
		}
		fmt.Fprintf(&b, "> %s: \n", label)

	case models.InputMultiCheckbox:
		for _, opt := range item.Input.Options {
			fmt.Fprintf(&b, "- [ ] %s %s\n", opt.Label, hiddenValue(opt.Value))
		}

	case models.InputRichText:
		if item.Input.Placeholder != "" {
			fmt.Fprintf(&b, "*%s*\n", item.Input.Placeholder)
		}
		b.WriteString("\n\n")

	default: // InputText and anything unrecognized
		if item.Input.Placeholder != "" {
			fmt.Fprintf(&b, "> *%s*\n", item.Input.Placeholder)
		}
		b.WriteString("> \n")
	}

	b.WriteString(endMarker(meta))
	b.WriteString("\n")
	return b.String()
}
