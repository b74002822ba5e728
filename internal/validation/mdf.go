// Package validation grades a case against its checklist and scans a
// parsed MDF for the critical fields the processing team rejects cases
// over. Findings are advisory; nothing here blocks an export.
package validation

import (
	"strings"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

// criticalField binds one critical MDF field to an explicit presence
// accessor on the parsed record.
type criticalField struct {
	field   string
	label   string
	group   string
	present func(d *models.ParsedMDF) bool
}

func nonBlank(s string) bool { return strings.TrimSpace(s) != "" }

// criticalFields is the fixed scan list. Account number and IBAN are a
// single check; either one satisfies the settlement requirement.
var criticalFields = []criticalField{
	{"merchantLegalName", "Merchant Legal Name", "Merchant Info", func(d *models.ParsedMDF) bool { return nonBlank(d.MerchantLegalName) }},
	{"dba", "Doing Business As (DBA)", "Merchant Info", func(d *models.ParsedMDF) bool { return nonBlank(d.DBA) }},
	{"emirate", "Emirate", "Merchant Info", func(d *models.ParsedMDF) bool { return nonBlank(d.Emirate) }},
	{"country", "Country", "Merchant Info", func(d *models.ParsedMDF) bool { return nonBlank(d.Country) }},
	{"address", "Address", "Merchant Info", func(d *models.ParsedMDF) bool { return nonBlank(d.Address) }},
	{"mobileNo", "Mobile Number", "Merchant Info", func(d *models.ParsedMDF) bool { return nonBlank(d.MobileNo) }},
	{"email1", "Email Address", "Merchant Info", func(d *models.ParsedMDF) bool { return nonBlank(d.Email1) }},
	{"contactName", "Contact Person Name", "Contact", func(d *models.ParsedMDF) bool { return nonBlank(d.ContactName) }},
	{"contactTitle", "Contact Title / Position", "Contact", func(d *models.ParsedMDF) bool { return nonBlank(d.ContactTitle) }},
	{"contactMobile", "Contact Mobile", "Contact", func(d *models.ParsedMDF) bool { return nonBlank(d.ContactMobile) }},
	{"accountNoOrIban", "Account Number / IBAN", "Settlement", func(d *models.ParsedMDF) bool { return nonBlank(d.AccountNo) || nonBlank(d.IBAN) }},
	{"bankName", "Bank Name", "Settlement", func(d *models.ParsedMDF) bool { return nonBlank(d.BankName) }},
	{"shareholders", "Shareholder Details", "KYC", func(d *models.ParsedMDF) bool { return len(d.Shareholders) > 0 }},
	{"projectedMonthlyVolume", "Projected Monthly Volume", "KYC", func(d *models.ParsedMDF) bool { return nonBlank(d.ProjectedMonthlyVolume) }},
	{"sourceOfIncome", "Source of Income", "KYC", func(d *models.ParsedMDF) bool { return nonBlank(d.SourceOfIncome) }},
	{"feeSchedule", "Fee Schedule", "Fees", func(d *models.ParsedMDF) bool { return len(d.FeeSchedule) > 0 }},
}

// acceptablePercentage is the completeness floor below which an MDF
// scan is flagged for re-scanning or manual completion.
const acceptablePercentage = 60

// ValidateMDF scans a parsed MDF for the critical fields and reports
// per-field presence plus an overall completeness percentage.
func ValidateMDF(data *models.ParsedMDF) models.MDFValidationResult {
	result := models.MDFValidationResult{
		MissingFields: []models.MDFFieldCheck{},
		PresentFields: []models.MDFFieldCheck{},
		AllFields:     make([]models.MDFFieldCheck, 0, len(criticalFields)),
	}

	for _, cf := range criticalFields {
		check := models.MDFFieldCheck{
			Field:   cf.field,
			Label:   cf.label,
			Group:   cf.group,
			Present: cf.present(data),
		}
		result.AllFields = append(result.AllFields, check)
		if check.Present {
			result.PresentFields = append(result.PresentFields, check)
		} else {
			result.MissingFields = append(result.MissingFields, check)
		}
	}

	result.TotalChecked = len(result.AllFields)
	result.TotalPresent = len(result.PresentFields)
	// Integer rounding, not truncation, so 59.5% still reads as 60.
	result.Percentage = (result.TotalPresent*100 + result.TotalChecked/2) / result.TotalChecked
	result.IsAcceptable = result.Percentage >= acceptablePercentage

	return result
}
