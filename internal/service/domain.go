package service

import "regexp"

// domainPattern is matched against the start of the input only; anything
// after a valid prefix is accepted.
var domainPattern = regexp.MustCompile(`^[A-Za-z0-9-]+[.][A-Za-z.]{2,}`) //nolint: gochecknoglobals

// ValidDomain reports whether s starts with a label, a dot and at least two
// letters or dots, e.g. "mail.ru" or "ab.co.uk".
func ValidDomain(s string) bool {
	return domainPattern.MatchString(s)
}
