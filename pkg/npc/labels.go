package npc

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// DisplayLabel turns a snake_case identifier into a title-cased display
// string, e.g. "resource_management" becomes "Resource Management".
func DisplayLabel(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}
