package parser

import (
	"regexp"
	"strings"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

var (
	reLicenseNo    = regexp.MustCompile(`(?i)license.*(?:no|number)`)
	reLicenseValue = regexp.MustCompile(`[\d\-\/]+`)
	reExpiry       = regexp.MustCompile(`(?i)expir`)
	reIssue        = regexp.MustCompile(`(?i)issue`)
	reTLBizName    = regexp.MustCompile(`(?i)(?:trade|business|company).*name`)
	reTLLegalForm  = regexp.MustCompile(`(?i)legal.*(?:form|type|status)`)
	reTLActivity   = regexp.MustCompile(`(?i)activit(?:y|ies)?`)

	reTLPartnerHdr   = regexp.MustCompile(`(?i)(?:partner|shareholder|owner).*(?:name|detail)`)
	reTLPartnerBreak = regexp.MustCompile(`(?i)activit|section|legal.*form|capital`)
)

// Issuing-authority detectors, applied in order on every line. A later
// match overwrites an earlier one, so incidental mentions of another
// free zone lose to the authority named further down the document.
var authorityDetectors = []struct {
	name string
	re   *regexp.Regexp
}{
	{"DED", regexp.MustCompile(`(?i)\bded\b|department.*economic`)},
	{"JAFZA", regexp.MustCompile(`(?i)\bjafza\b|jebel.*ali`)},
	{"DMCC", regexp.MustCompile(`(?i)\bdmcc\b`)},
	{"DIFC", regexp.MustCompile(`(?i)\bdifc\b`)},
	{"ADGM", regexp.MustCompile(`(?i)\badgm\b`)},
	{"RAKEZ", regexp.MustCompile(`(?i)\brakez\b|ras.*al.*khaim`)},
	{"SAIF Zone", regexp.MustCompile(`(?i)saif.*zone|sharjah.*airport`)},
}

// ParseTradeLicense extracts a structured record from trade license
// text.
func ParseTradeLicense(text string) models.ParsedTradeLicense {
	data := models.ParsedTradeLicense{RawText: text}

	lines := splitLines(text)

	for i, line := range lines {
		nextLine := lineAt(lines, i+1)

		// Every detector overwrites on a repeat match, so the value
		// named furthest down the document wins.
		if reLicenseNo.MatchString(line) {
			if m := reLicenseValue.FindString(strippedAfter(line, reLicenseNo)); m != "" {
				data.LicenseNumber = m
			} else if m := reLicenseValue.FindString(nextLine); m != "" {
				data.LicenseNumber = m
			}
		}

		if reExpiry.MatchString(line) {
			data.ExpiryDate = dateNear(lines, i)
		}
		if reIssue.MatchString(line) && !reExpiry.MatchString(line) {
			data.IssueDate = dateNear(lines, i)
		}

		if reTLBizName.MatchString(line) {
			data.BusinessName = fieldAfter(lines, i, reTLBizName)
		}
		if reTLLegalForm.MatchString(line) {
			data.LegalForm = fieldAfter(lines, i, reTLLegalForm)
		}
		if reTLActivity.MatchString(line) {
			data.Activities = fieldAfter(lines, i, reTLActivity)
		}

		for _, det := range authorityDetectors {
			if det.re.MatchString(line) {
				data.Authority = det.name
			}
		}

		if reTLPartnerHdr.MatchString(line) {
			var names []string
			for j := i + 1; j < i+10 && j < len(lines); j++ {
				pl := lines[j]
				if reTLPartnerBreak.MatchString(pl) {
					break
				}
				names = append(names, pl)
			}
			if len(names) > 0 {
				data.PartnersListed = strings.Join(names, "; ")
			}
		}
	}

	return data
}

// strippedAfter cuts a matched label off the front of a line so value
// tokens are searched only in the remainder.
func strippedAfter(line string, label *regexp.Regexp) string {
	if loc := label.FindStringIndex(line); loc != nil {
		return line[loc[1]:]
	}
	return line
}
