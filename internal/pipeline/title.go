package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"judgments/internal"
	"judgments/internal/util"
)

var reAlias = regexp.MustCompile(`(?i)(?:also known as|formerly known as|previously known as)\s*([^)]+)`)

// SplitAlias separates an "also known as" style alias from a case name.
// Both values are returned trimmed but otherwise uncleaned; alias is empty
// when the name carries none.
func SplitAlias(name string) (title, alias string) {
	m := reAlias.FindStringSubmatch(name)
	if m == nil {
		return strings.TrimSpace(name), ""
	}
	return strings.TrimSpace(reAlias.ReplaceAllString(name, "")), strings.TrimSpace(m[1])
}

// TitleFields derives title/alias columns for each candidate name. The first
// candidate fills title and alias, later ones title_02/alias_02 onwards.
func TitleFields(candidates []string) internal.Record {
	rec := internal.NewRecord()
	for i, candidate := range candidates {
		titleKey, aliasKey := internal.ColTitle, internal.ColAlias
		if i > 0 {
			titleKey = fmt.Sprintf("%s_%02d", internal.ColTitle, i+1)
			aliasKey = fmt.Sprintf("%s_%02d", internal.ColAlias, i+1)
		}

		if util.IsBlank(candidate) || strings.TrimSpace(candidate) == internal.NA {
			rec.Set(titleKey, internal.NA)
			rec.Set(aliasKey, internal.NA)
			continue
		}

		title, alias := SplitAlias(candidate)
		rec.Set(titleKey, cleanTitle(title))
		rec.Set(aliasKey, cleanTitle(alias))
	}
	return rec
}

func cleanTitle(s string) string {
	return orNA(util.CollapseSpaces(util.StripPunctuationStrict(s)))
}
