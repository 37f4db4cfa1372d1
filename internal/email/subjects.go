package email

import "fmt"

const (
	subjectLeadFmt      = "Nouveau lead - %s (%s)"
	subjectLeadNoSource = "site"
	subjectLeadNoLocale = "?"
)

// LeadSubject is the subject line of a lead notification.
func LeadSubject(source, locale string) string {
	if source == "" {
		source = subjectLeadNoSource
	}
	if locale == "" {
		locale = subjectLeadNoLocale
	}
	return fmt.Sprintf(subjectLeadFmt, source, locale)
}
