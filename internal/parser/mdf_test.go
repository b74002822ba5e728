package parser

import (
	"testing"
)

const sampleMDF = `Merchant Details Form
Merchant Legal Name: Al Noor Trading LLC
Doing Business As: Al Noor Electronics
Emirate: Dubai
Country: United Arab Emirates
Address
Shop 12, Al Fahidi Street, Bur Dubai
P.O. Box: 12345
Mobile No: 050 123 4567
Telephone No: 04 333 2222
Email Address 1: info@alnoor.ae
Email Address 2: sales@alnoor.ae
Shop Location: Bur Dubai Mall
Type of Business: Retail
Web Address: www.alnoor.ae
Contact Person Details
Name: Fatima Hassan
Position: Sales Manager
Mobile: 055 987 6543
Work Telephone: 04 222 1111
Fee Schedule
Visa  2.20%  2.50%
Mastercard  2.30%  2.60%
POS Terminal
One-off Fee: 1,000
Annual Rent: 1,500
MPOS Terminal
Setup Fee: 300
Refund Fee: 10
MSV Shortfall: 200
Chargeback Handling Fee: 100
Merchant Portal Fee: 50
Business Insight Fee: 25
ECOM Gateway
Setup Fee: 500
Annual Maintenance Fee: 600
Security Collateral: 2,000
Number of Terminals: 2
POS ✓
mPOS
MOTO
IBAN: AE070331234567890123456
Account No:
0123456789
Account Title: Al Noor Trading LLC
Bank Name: Emirates NBD
SWIFT Code: EBILAEAD
Branch Name: Deira Branch
Payment Plan: Standard
Shareholder Details - Shares %
Name  Shares %  Nationality
Ahmed Al Mansoori  60%  UAE  Resident  UAE
Sara Al Mansoori  40%  India  Non-Resident  India
Business Projections
Projected Transaction Volume: AED 50,000
Projected Transaction Count: 450
Source of Income: Trading revenue
Country of Income: United Arab Emirates
Source of Capital: Personal savings
Details of Activities: Electronics retail
Exact Nature of Business: Consumer electronics
Key Suppliers
Country  Company  %
China  Shenzhen Electronics Co  40%
Key Customers
Country  Company  %
UAE  Retail buyers  100%
Sanction Country Exposure
Iran  No
Russia  Yes  Electronics
Other Acquirer Relationship: Yes
Name of Acquirer: Network International
Length of relationship: 3 years
Reason for approaching Magnati: Better rates`

func TestParseMDFMerchantInfo(t *testing.T) {
	data := ParseMDF(sampleMDF)

	if data.MerchantLegalName != "Al Noor Trading LLC" {
		t.Errorf("Expected legal name Al Noor Trading LLC, got %q", data.MerchantLegalName)
	}
	if data.DBA != "Al Noor Electronics" {
		t.Errorf("Expected DBA Al Noor Electronics, got %q", data.DBA)
	}
	if data.Emirate != "Dubai" {
		t.Errorf("Expected emirate Dubai, got %q", data.Emirate)
	}
	if data.Country != "United Arab Emirates" {
		t.Errorf("Expected country United Arab Emirates, got %q", data.Country)
	}
	if data.Address != "Shop 12, Al Fahidi Street, Bur Dubai" {
		t.Errorf("Expected address from next line, got %q", data.Address)
	}
	if data.POBox != "12345" {
		t.Errorf("Expected PO box 12345, got %q", data.POBox)
	}
	if data.MobileNo != "050 123 4567" {
		t.Errorf("Expected mobile 050 123 4567, got %q", data.MobileNo)
	}
	if data.TelephoneNo != "04 333 2222" {
		t.Errorf("Expected telephone 04 333 2222, got %q", data.TelephoneNo)
	}
	if data.Email1 != "info@alnoor.ae" {
		t.Errorf("Expected email1 info@alnoor.ae, got %q", data.Email1)
	}
	if data.Email2 != "sales@alnoor.ae" {
		t.Errorf("Expected email2 sales@alnoor.ae, got %q", data.Email2)
	}
	if data.ShopLocation != "Bur Dubai Mall" {
		t.Errorf("Expected shop location Bur Dubai Mall, got %q", data.ShopLocation)
	}
	if data.BusinessType != "Retail" {
		t.Errorf("Expected business type Retail, got %q", data.BusinessType)
	}
	if data.WebAddress != "www.alnoor.ae" {
		t.Errorf("Expected web address www.alnoor.ae, got %q", data.WebAddress)
	}
	if data.RawText != sampleMDF {
		t.Error("Expected raw text to be preserved")
	}
}

func TestParseMDFContactPerson(t *testing.T) {
	data := ParseMDF(sampleMDF)

	if data.ContactName != "Fatima Hassan" {
		t.Errorf("Expected contact name Fatima Hassan, got %q", data.ContactName)
	}
	if data.ContactTitle != "Sales Manager" {
		t.Errorf("Expected contact title Sales Manager, got %q", data.ContactTitle)
	}
	if data.ContactMobile != "055 987 6543" {
		t.Errorf("Expected contact mobile 055 987 6543, got %q", data.ContactMobile)
	}
	if data.ContactWorkPhone != "04 222 1111" {
		t.Errorf("Expected contact work phone 04 222 1111, got %q", data.ContactWorkPhone)
	}
}

func TestParseMDFFees(t *testing.T) {
	data := ParseMDF(sampleMDF)

	if len(data.FeeSchedule) != 2 {
		t.Fatalf("Expected 2 card rates, got %d", len(data.FeeSchedule))
	}
	if data.FeeSchedule[0].CardType != "Visa" || data.FeeSchedule[0].POSRate != "2.20" || data.FeeSchedule[0].EcomRate != "2.50" {
		t.Errorf("Unexpected Visa rate row: %+v", data.FeeSchedule[0])
	}
	if data.FeeSchedule[1].CardType != "Mastercard" || data.FeeSchedule[1].POSRate != "2.30" {
		t.Errorf("Unexpected Mastercard rate row: %+v", data.FeeSchedule[1])
	}

	want := map[string]string{
		"One-off Fee":            "pos",
		"Annual Rent":            "pos",
		"Annual Maintenance Fee": "ecom",
		"Security Collateral":    "ecom",
	}
	got := map[string]string{}
	setupCategories := []string{}
	for _, fee := range data.TerminalFees {
		if fee.Label == "Setup Fee" {
			setupCategories = append(setupCategories, fee.Category)
			continue
		}
		got[fee.Label] = fee.Category
	}
	for label, category := range want {
		if got[label] != category {
			t.Errorf("Expected %s in category %s, got %q", label, category, got[label])
		}
	}
	if len(setupCategories) != 2 || setupCategories[0] != "mpos" || setupCategories[1] != "ecom" {
		t.Errorf("Expected setup fee categories [mpos ecom], got %v", setupCategories)
	}

	if data.RefundFee != "10" {
		t.Errorf("Expected refund fee 10, got %q", data.RefundFee)
	}
	if data.MSVShortfall != "200" {
		t.Errorf("Expected MSV shortfall 200, got %q", data.MSVShortfall)
	}
	if data.ChargebackFee != "100" {
		t.Errorf("Expected chargeback fee 100, got %q", data.ChargebackFee)
	}
	if data.PortalFee != "50" {
		t.Errorf("Expected portal fee 50, got %q", data.PortalFee)
	}
	if data.BusinessInsightFee != "25" {
		t.Errorf("Expected business insight fee 25, got %q", data.BusinessInsightFee)
	}
}

func TestParseMDFProductFlags(t *testing.T) {
	data := ParseMDF(sampleMDF)

	if data.NumTerminals != "2" {
		t.Errorf("Expected 2 terminals, got %q", data.NumTerminals)
	}
	if !data.ProductPOS {
		t.Error("Expected POS product to be checked")
	}
	// Listed without a checkbox cue, so not selected.
	if data.ProductMPOS {
		t.Error("Expected MPOS product to be unchecked")
	}
	if data.ProductMOTO {
		t.Error("Expected MOTO product to be unchecked")
	}
}

func TestParseMDFSettlement(t *testing.T) {
	data := ParseMDF(sampleMDF)

	if data.IBAN != "AE070331234567890123456" {
		t.Errorf("Expected IBAN AE070331234567890123456, got %q", data.IBAN)
	}
	if data.AccountNo != "0123456789" {
		t.Errorf("Expected account no 0123456789, got %q", data.AccountNo)
	}
	if data.AccountTitle != "Al Noor Trading LLC" {
		t.Errorf("Expected account title Al Noor Trading LLC, got %q", data.AccountTitle)
	}
	if data.BankName != "Emirates NBD" {
		t.Errorf("Expected bank name Emirates NBD, got %q", data.BankName)
	}
	if data.SwiftCode != "EBILAEAD" {
		t.Errorf("Expected SWIFT EBILAEAD, got %q", data.SwiftCode)
	}
	if data.BranchName != "Deira Branch" {
		t.Errorf("Expected branch name Deira Branch, got %q", data.BranchName)
	}
	if data.PaymentPlan != "Standard" {
		t.Errorf("Expected payment plan Standard, got %q", data.PaymentPlan)
	}
}

func TestParseMDFIBANWithSpaces(t *testing.T) {
	data := ParseMDF("IBAN: AE07 0331 2345 6789 0123 456\nBank Name: FAB")

	if data.IBAN != "AE070331234567890123456" {
		t.Errorf("Expected whitespace stripped from IBAN, got %q", data.IBAN)
	}
}

func TestParseMDFShareholders(t *testing.T) {
	data := ParseMDF(sampleMDF)

	if len(data.Shareholders) != 2 {
		t.Fatalf("Expected 2 shareholders, got %d", len(data.Shareholders))
	}

	first := data.Shareholders[0]
	if first.Name != "Ahmed Al Mansoori" {
		t.Errorf("Expected name Ahmed Al Mansoori, got %q", first.Name)
	}
	if first.SharesPercentage != "60" {
		t.Errorf("Expected 60 percent, got %q", first.SharesPercentage)
	}
	if first.Nationality != "UAE" {
		t.Errorf("Expected nationality UAE, got %q", first.Nationality)
	}
	if first.ResidenceStatus != "Resident" {
		t.Errorf("Expected residence status Resident, got %q", first.ResidenceStatus)
	}
	if first.CountryOfBirth != "UAE" {
		t.Errorf("Expected country of birth UAE, got %q", first.CountryOfBirth)
	}

	second := data.Shareholders[1]
	if second.Name != "Sara Al Mansoori" || second.SharesPercentage != "40" || second.Nationality != "India" {
		t.Errorf("Unexpected second shareholder: %+v", second)
	}
}

func TestParseMDFProjectionsAndKYC(t *testing.T) {
	data := ParseMDF(sampleMDF)

	if data.ProjectedMonthlyVolume != "AED 50,000" {
		t.Errorf("Expected projected volume AED 50,000, got %q", data.ProjectedMonthlyVolume)
	}
	if data.ProjectedMonthlyCount != "450" {
		t.Errorf("Expected projected count 450, got %q", data.ProjectedMonthlyCount)
	}
	if data.SourceOfIncome != "Trading revenue" {
		t.Errorf("Expected source of income Trading revenue, got %q", data.SourceOfIncome)
	}
	if data.IncomeCountry != "United Arab Emirates" {
		t.Errorf("Expected income country United Arab Emirates, got %q", data.IncomeCountry)
	}
	if data.SourceOfCapital != "Personal savings" {
		t.Errorf("Expected source of capital Personal savings, got %q", data.SourceOfCapital)
	}
	if data.ActivityDetails != "Electronics retail" {
		t.Errorf("Expected activity details Electronics retail, got %q", data.ActivityDetails)
	}
	if data.ExactBusinessNature != "Consumer electronics" {
		t.Errorf("Expected exact nature Consumer electronics, got %q", data.ExactBusinessNature)
	}
}

func TestParseMDFTradePartners(t *testing.T) {
	data := ParseMDF(sampleMDF)

	if len(data.KeySuppliers) != 1 {
		t.Fatalf("Expected 1 key supplier, got %d", len(data.KeySuppliers))
	}
	sup := data.KeySuppliers[0]
	if sup.Country != "China" || sup.Company != "Shenzhen Electronics Co" || sup.Percentage != "40" {
		t.Errorf("Unexpected supplier row: %+v", sup)
	}

	if len(data.KeyCustomers) != 1 {
		t.Fatalf("Expected 1 key customer, got %d", len(data.KeyCustomers))
	}
	cust := data.KeyCustomers[0]
	if cust.Country != "UAE" || cust.Company != "Retail buyers" || cust.Percentage != "100" {
		t.Errorf("Unexpected customer row: %+v", cust)
	}
}

func TestParseMDFSanctionsExposure(t *testing.T) {
	data := ParseMDF(sampleMDF)

	byCountry := map[string]bool{}
	for _, e := range data.SanctionsExposure {
		byCountry[e.Country] = e.HasBusiness
	}

	has, ok := byCountry["Iran"]
	if !ok || has {
		t.Errorf("Expected Iran exposure row with no business, got %v %v", ok, has)
	}
	has, ok = byCountry["Russia"]
	if !ok || !has {
		t.Errorf("Expected Russia exposure row with business, got %v %v", ok, has)
	}

	for _, e := range data.SanctionsExposure {
		if e.Country == "Russia" && e.Goods != "Electronics" {
			t.Errorf("Expected Russia goods Electronics, got %q", e.Goods)
		}
	}
}

func TestParseMDFOtherAcquirer(t *testing.T) {
	data := ParseMDF(sampleMDF)

	if !data.HasOtherAcquirer {
		t.Error("Expected other acquirer relationship to be detected")
	}
	if data.OtherAcquirerNames != "Network International" {
		t.Errorf("Expected acquirer Network International, got %q", data.OtherAcquirerNames)
	}
	if data.OtherAcquirerYears != "3 years" {
		t.Errorf("Expected relationship length 3 years, got %q", data.OtherAcquirerYears)
	}
	if data.ReasonForMagnati != "Better rates" {
		t.Errorf("Expected reason Better rates, got %q", data.ReasonForMagnati)
	}
}

func TestParseMDFEmptyText(t *testing.T) {
	data := ParseMDF("")

	if data.MerchantLegalName != "" {
		t.Errorf("Expected no legal name, got %q", data.MerchantLegalName)
	}
	if len(data.FeeSchedule) != 0 || len(data.Shareholders) != 0 {
		t.Error("Expected empty slices for empty input")
	}
	if data.FeeSchedule == nil || data.Shareholders == nil || data.SanctionsExposure == nil {
		t.Error("Expected slices initialized, not nil")
	}
}

func TestParseMDFMobileGuardedByContactContext(t *testing.T) {
	text := `Contact Person Details
Name: Omar
Mobile No: 055 111 2222`

	data := ParseMDF(text)

	if data.MobileNo != "" {
		t.Errorf("Expected merchant mobile to stay empty near contact block, got %q", data.MobileNo)
	}
	if data.ContactMobile != "055 111 2222" {
		t.Errorf("Expected contact mobile 055 111 2222, got %q", data.ContactMobile)
	}
}
