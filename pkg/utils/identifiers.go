package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonSlugChars = regexp.MustCompile("[^a-z0-9-]")
	multiHyphen  = regexp.MustCompile("-+")
	nonDigits    = regexp.MustCompile(`\D`)
)

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// GenerateBillNo generates a unique human-readable bill number
func GenerateBillNo() string {
	return "BILL-" + strings.ToUpper(uuid.New().String()[:8])
}

// NormalizePhone strips everything but digits from a phone number
func NormalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}
