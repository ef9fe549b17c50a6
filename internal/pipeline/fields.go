package pipeline

import (
	"strings"

	"judgments/internal"
	"judgments/internal/util"
)

const (
	// AttachmentOrigin prefixes the relative attachment slugs.
	AttachmentOrigin = "https://www.judiciary.gov.bn"
	// SearchPageURL is the page every record is attributed to.
	SearchPageURL = "https://www.judiciary.gov.bn/SJD%20Site%20Pages/Judgment%20Search.aspx"
)

// Lookup returns the raw value for key, or false when it is absent, blank, or
// already the NA sentinel.
func Lookup(raw internal.RawRecord, key string) (string, bool) {
	v, ok := raw[key]
	if !ok || util.IsBlank(v) || strings.TrimSpace(v) == internal.NA {
		return "", false
	}
	return v, true
}

func plainField(raw internal.RawRecord, key string) string {
	v, ok := Lookup(raw, key)
	if !ok {
		return internal.NA
	}
	return orNA(util.CleanText(v))
}

func Years(raw internal.RawRecord) string      { return plainField(raw, internal.FieldYears) }
func CaseName(raw internal.RawRecord) string   { return plainField(raw, internal.FieldTitle) }
func CaseNumber(raw internal.RawRecord) string { return plainField(raw, internal.FieldCaseNumber) }
func Keyword(raw internal.RawRecord) string    { return plainField(raw, internal.FieldKeyword) }
func CourtTitle(raw internal.RawRecord) string { return plainField(raw, internal.FieldCourtTitle) }
func JurisdictionTitle(raw internal.RawRecord) string {
	return plainField(raw, internal.FieldJurisdictionTitle)
}

// Attachment turns the attachment fragment into an absolute URL. A fragment
// without any div-nested anchor yields the bare origin.
func Attachment(raw internal.RawRecord) string {
	v, ok := Lookup(raw, internal.FieldAttachment)
	if !ok {
		return internal.NA
	}
	links, err := ExtractLinks(v)
	if err != nil {
		return internal.NA
	}
	return AttachmentOrigin + strings.TrimSpace(strings.Join(links, " "))
}

func PresidingJudge(raw internal.RawRecord) string {
	v, ok := Lookup(raw, internal.FieldPresidingJudge)
	if !ok {
		return internal.NA
	}
	texts, err := ExtractText(v)
	if err != nil {
		return internal.NA
	}
	s := util.RemoveZeroWidth(strings.Join(texts, " "))
	s = util.StripPunctuation(s)
	return orNA(util.CollapseSpaces(s))
}

func orNA(s string) string {
	if util.IsBlank(s) {
		return internal.NA
	}
	return s
}
