// Package flags formats cobra flag usage strings.
package flags

import "strings"

const (
	choiceSeparatorConstant  = "|"
	placeholderOpenConstant  = "`<"
	placeholderCloseConstant = ">`"
)

// ChoiceUsage renders a usage string whose back-quoted placeholder lists choices, upper-casing the default.
// pflag shows the back-quoted text as the flag's value name.
func ChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	displayed := make([]string, 0, len(choices))
	seen := make(map[string]bool, len(choices))

	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 || seen[normalizedChoice] {
			continue
		}
		seen[normalizedChoice] = true

		if normalizedChoice == normalizedDefault {
			displayed = append(displayed, strings.ToUpper(normalizedChoice))
			continue
		}
		displayed = append(displayed, normalizedChoice)
	}

	placeholder := placeholderOpenConstant + strings.Join(displayed, choiceSeparatorConstant) + placeholderCloseConstant
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return placeholder
	}
	return placeholder + " " + trimmedDescription
}
