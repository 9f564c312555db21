package relay

import "fmt"

const (
	placeholderName    = "sir/madam"
	placeholderProject = "new"

	// ScriptLanguage tags the spoken-text fallback.
	ScriptLanguage = "en-IN"
)

const promptTemplate = "Namaskar %s! Hum aapke %s project ke baare mein call kar rahe hain. " +
	"Kya aap site visit ke liye agle 2 din mein available hain? " +
	"Confirm booking ke liye 1 dabayein, ya callback ke liye 2 dabayein."

// Prompt renders the site-visit script for a lead. Empty fields fall back to
// generic placeholders so the call can always proceed.
func Prompt(name, project string) string {
	if name == "" {
		name = placeholderName
	}
	if project == "" {
		project = placeholderProject
	}
	return fmt.Sprintf(promptTemplate, name, project)
}

// Script is everything the provider markup needs for one call leg.
// AudioURL is empty when synthesis was unavailable; Text is always set.
type Script struct {
	AudioURL     string
	Text         string
	Language     string
	GatherAction string
}
