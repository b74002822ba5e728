package parser

import (
	"testing"
)

const sampleTradeLicense = `Department of Economic Development
Government of Dubai
Trade License
License No: 612345
Trade Name: Al Noor Trading LLC
Legal Form: Limited Liability Company
Issue Date: 15/03/2021
Expiry Date: 14/03/2026
Business Activities: Retail of electronics
Partner Name / Details
Ahmed Al Mansoori
Sara Al Mansoori
Capital: AED 300,000`

func TestParseTradeLicense(t *testing.T) {
	data := ParseTradeLicense(sampleTradeLicense)

	if data.LicenseNumber != "612345" {
		t.Errorf("Expected license number 612345, got %q", data.LicenseNumber)
	}
	if data.BusinessName != "Al Noor Trading LLC" {
		t.Errorf("Expected business name Al Noor Trading LLC, got %q", data.BusinessName)
	}
	if data.LegalForm != "Limited Liability Company" {
		t.Errorf("Expected legal form Limited Liability Company, got %q", data.LegalForm)
	}
	if data.IssueDate != "15/03/2021" {
		t.Errorf("Expected issue date 15/03/2021, got %q", data.IssueDate)
	}
	if data.ExpiryDate != "14/03/2026" {
		t.Errorf("Expected expiry date 14/03/2026, got %q", data.ExpiryDate)
	}
	if data.Activities != "Retail of electronics" {
		t.Errorf("Expected activities Retail of electronics, got %q", data.Activities)
	}
	if data.Authority != "DED" {
		t.Errorf("Expected authority DED, got %q", data.Authority)
	}
	if data.PartnersListed != "Ahmed Al Mansoori; Sara Al Mansoori" {
		t.Errorf("Expected two partners, got %q", data.PartnersListed)
	}
	if data.RawText != sampleTradeLicense {
		t.Error("Expected raw text to be preserved")
	}
}

func TestParseTradeLicenseLicenseNumberOnNextLine(t *testing.T) {
	data := ParseTradeLicense("License Number\n98765-01\nTrade Name: Shop")

	if data.LicenseNumber != "98765-01" {
		t.Errorf("Expected license number 98765-01, got %q", data.LicenseNumber)
	}
}

func TestParseTradeLicenseAuthorityLastMatchWins(t *testing.T) {
	text := `Department of Economic Development
Trade License
License No: 11111
Issued by Jebel Ali Free Zone Authority (JAFZA)`

	data := ParseTradeLicense(text)

	if data.Authority != "JAFZA" {
		t.Errorf("Expected authority JAFZA, got %q", data.Authority)
	}
}

func TestParseTradeLicenseRepeatedLabelsLastMatchWins(t *testing.T) {
	text := `Trade License
License No: 11111
Trade Name: Old Branch Name
Legal Form: Establishment
Business Activities: Trading
Renewal Section
License No: 22222
Trade Name: Al Noor Trading LLC
Legal Form: Limited Liability Company
Business Activities: Retail of electronics
Partner Name / Details
Ahmed Al Mansoori
Partner Name / Details
Sara Al Mansoori`

	data := ParseTradeLicense(text)

	if data.LicenseNumber != "22222" {
		t.Errorf("Expected the later license number 22222, got %q", data.LicenseNumber)
	}
	if data.BusinessName != "Al Noor Trading LLC" {
		t.Errorf("Expected the later trade name, got %q", data.BusinessName)
	}
	if data.LegalForm != "Limited Liability Company" {
		t.Errorf("Expected the later legal form, got %q", data.LegalForm)
	}
	if data.Activities != "Retail of electronics" {
		t.Errorf("Expected the later activities, got %q", data.Activities)
	}
	if data.PartnersListed != "Sara Al Mansoori" {
		t.Errorf("Expected the later partner block, got %q", data.PartnersListed)
	}
}

func TestParseTradeLicenseFreeZoneAuthorities(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"Dubai Multi Commodities Centre DMCC", "DMCC"},
		{"Dubai International Financial Centre DIFC", "DIFC"},
		{"Abu Dhabi Global Market ADGM", "ADGM"},
		{"Ras Al Khaimah Economic Zone", "RAKEZ"},
		{"Sharjah Airport International Free Zone", "SAIF Zone"},
	}

	for _, tc := range cases {
		data := ParseTradeLicense(tc.line)
		if data.Authority != tc.want {
			t.Errorf("Expected authority %s for %q, got %q", tc.want, tc.line, data.Authority)
		}
	}
}

func TestParseTradeLicenseEmptyText(t *testing.T) {
	data := ParseTradeLicense("")

	if data.LicenseNumber != "" || data.Authority != "" || data.PartnersListed != "" {
		t.Errorf("Expected zero-valued record for empty input, got %+v", data)
	}
}
