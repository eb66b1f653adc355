package domain

import (
	"regexp"
	"strconv"
	"time"
)

const referenceDateLayout = "2006-01-02"

// The template is form data whose data_json value is percent-encoded JSON
// holding an escaped JSON summary. Both markers are matched on the encoded bytes.
var (
	payloadDatePattern = regexp.MustCompile(`date%22%3A%22(.*?)%22%2C%22data`)
	payloadStepPattern = regexp.MustCompile(`ttl%5C%22%3A(.*?)%2C%5C%22dis`)
)

func FormatReferenceDate(now time.Time) string {
	return now.In(ReferenceZone).Format(referenceDateLayout)
}

// RenderPayload replaces the captured date and step spans of template. Content
// outside the two spans is left byte-identical.
func RenderPayload(template string, date string, steps int) (string, error) {
	rendered, err := replaceSingleSpan(template, payloadDatePattern, "date", date)
	if err != nil {
		return "", err
	}

	return replaceSingleSpan(rendered, payloadStepPattern, "ttl", strconv.Itoa(steps))
}

func replaceSingleSpan(template string, pattern *regexp.Regexp, field string, value string) (string, error) {
	matches := pattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) != 1 {
		return "", &TemplateError{Field: field, Matches: len(matches)}
	}

	start, end := matches[0][2], matches[0][3]
	return template[:start] + value + template[end:], nil
}
