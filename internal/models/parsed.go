package models

// CardRate is one row of the MDF fee schedule.
type CardRate struct {
	CardType string `json:"cardType" msgpack:"cardType"`
	POSRate  string `json:"posRate,omitempty" msgpack:"posRate,omitempty"`
	EcomRate string `json:"ecomRate,omitempty" msgpack:"ecomRate,omitempty"`
}

// TerminalFee is one detected terminal/setup fee line.
type TerminalFee struct {
	Category string `json:"category" msgpack:"category"` // "pos", "mpos", "ecom", "other"
	Label    string `json:"label" msgpack:"label"`
	Amount   string `json:"amount,omitempty" msgpack:"amount,omitempty"`
}

// ShareholderRow is one shareholder extracted from the MDF KYC block.
type ShareholderRow struct {
	Name             string `json:"name,omitempty" msgpack:"name,omitempty"`
	SharesPercentage string `json:"sharesPercentage,omitempty" msgpack:"sharesPercentage,omitempty"`
	Nationality      string `json:"nationality,omitempty" msgpack:"nationality,omitempty"`
	ResidenceStatus  string `json:"residenceStatus,omitempty" msgpack:"residenceStatus,omitempty"`
	CountryOfBirth   string `json:"countryOfBirth,omitempty" msgpack:"countryOfBirth,omitempty"`
}

// TradeExposure is one sanction-country exposure row.
type TradeExposure struct {
	Country     string `json:"country" msgpack:"country"`
	HasBusiness bool   `json:"hasBusiness" msgpack:"hasBusiness"`
	Percentage  string `json:"percentage,omitempty" msgpack:"percentage,omitempty"`
	Goods       string `json:"goods,omitempty" msgpack:"goods,omitempty"`
}

// TradePartner is one key supplier or customer row.
type TradePartner struct {
	Country    string `json:"country,omitempty" msgpack:"country,omitempty"`
	Company    string `json:"company,omitempty" msgpack:"company,omitempty"`
	Percentage string `json:"percentage,omitempty" msgpack:"percentage,omitempty"`
}

// ParsedMDF is the structured record extracted from a Merchant Details
// Form. Absent fields stay zero-valued; extraction is best-effort and
// never fails a case.
type ParsedMDF struct {
	// Section 1: merchant information
	MerchantLegalName string `json:"merchantLegalName,omitempty" msgpack:"merchantLegalName,omitempty"`
	DBA               string `json:"dba,omitempty" msgpack:"dba,omitempty"`
	Emirate           string `json:"emirate,omitempty" msgpack:"emirate,omitempty"`
	Country           string `json:"country,omitempty" msgpack:"country,omitempty"`
	Address           string `json:"address,omitempty" msgpack:"address,omitempty"`
	POBox             string `json:"poBox,omitempty" msgpack:"poBox,omitempty"`
	MobileNo          string `json:"mobileNo,omitempty" msgpack:"mobileNo,omitempty"`
	TelephoneNo       string `json:"telephoneNo,omitempty" msgpack:"telephoneNo,omitempty"`
	Email1            string `json:"email1,omitempty" msgpack:"email1,omitempty"`
	Email2            string `json:"email2,omitempty" msgpack:"email2,omitempty"`
	ShopLocation      string `json:"shopLocation,omitempty" msgpack:"shopLocation,omitempty"`
	BusinessType      string `json:"businessType,omitempty" msgpack:"businessType,omitempty"`
	WebAddress        string `json:"webAddress,omitempty" msgpack:"webAddress,omitempty"`

	// Section 2: contact person
	ContactName      string `json:"contactName,omitempty" msgpack:"contactName,omitempty"`
	ContactTitle     string `json:"contactTitle,omitempty" msgpack:"contactTitle,omitempty"`
	ContactMobile    string `json:"contactMobile,omitempty" msgpack:"contactMobile,omitempty"`
	ContactWorkPhone string `json:"contactWorkPhone,omitempty" msgpack:"contactWorkPhone,omitempty"`

	// Section 3: fees
	FeeSchedule        []CardRate    `json:"feeSchedule" msgpack:"feeSchedule"`
	TerminalFees       []TerminalFee `json:"terminalFees" msgpack:"terminalFees"`
	RefundFee          string        `json:"refundFee,omitempty" msgpack:"refundFee,omitempty"`
	MSVShortfall       string        `json:"msvShortfall,omitempty" msgpack:"msvShortfall,omitempty"`
	ChargebackFee      string        `json:"chargebackFee,omitempty" msgpack:"chargebackFee,omitempty"`
	PortalFee          string        `json:"portalFee,omitempty" msgpack:"portalFee,omitempty"`
	BusinessInsightFee string        `json:"businessInsightFee,omitempty" msgpack:"businessInsightFee,omitempty"`

	// Section 4: POS details
	NumTerminals string `json:"numTerminals,omitempty" msgpack:"numTerminals,omitempty"`
	ProductPOS   bool   `json:"productPOS" msgpack:"productPOS"`
	ProductECOM  bool   `json:"productECOM" msgpack:"productECOM"`
	ProductMPOS  bool   `json:"productMPOS" msgpack:"productMPOS"`
	ProductMOTO  bool   `json:"productMOTO" msgpack:"productMOTO"`

	// Section 5: settlement
	AccountNo    string `json:"accountNo,omitempty" msgpack:"accountNo,omitempty"`
	IBAN         string `json:"iban,omitempty" msgpack:"iban,omitempty"`
	AccountTitle string `json:"accountTitle,omitempty" msgpack:"accountTitle,omitempty"`
	BankName     string `json:"bankName,omitempty" msgpack:"bankName,omitempty"`
	SwiftCode    string `json:"swiftCode,omitempty" msgpack:"swiftCode,omitempty"`
	BranchName   string `json:"branchName,omitempty" msgpack:"branchName,omitempty"`
	PaymentPlan  string `json:"paymentPlan,omitempty" msgpack:"paymentPlan,omitempty"`

	// KYC schedule
	Shareholders           []ShareholderRow `json:"shareholders" msgpack:"shareholders"`
	ProjectedMonthlyVolume string           `json:"projectedMonthlyVolume,omitempty" msgpack:"projectedMonthlyVolume,omitempty"`
	ProjectedMonthlyCount  string           `json:"projectedMonthlyCount,omitempty" msgpack:"projectedMonthlyCount,omitempty"`
	SourceOfIncome         string           `json:"sourceOfIncome,omitempty" msgpack:"sourceOfIncome,omitempty"`
	IncomeCountry          string           `json:"incomeCountry,omitempty" msgpack:"incomeCountry,omitempty"`
	ActivityDetails        string           `json:"activityDetails,omitempty" msgpack:"activityDetails,omitempty"`
	SourceOfCapital        string           `json:"sourceOfCapital,omitempty" msgpack:"sourceOfCapital,omitempty"`
	YearsInUAE             string           `json:"yearsInUAE,omitempty" msgpack:"yearsInUAE,omitempty"`
	ExactBusinessNature    string           `json:"exactBusinessNature,omitempty" msgpack:"exactBusinessNature,omitempty"`
	KeySuppliers           []TradePartner   `json:"keySuppliers" msgpack:"keySuppliers"`
	KeyCustomers           []TradePartner   `json:"keyCustomers" msgpack:"keyCustomers"`
	SanctionsExposure      []TradeExposure  `json:"sanctionsExposure" msgpack:"sanctionsExposure"`

	// Other acquirer
	HasOtherAcquirer   bool   `json:"hasOtherAcquirer" msgpack:"hasOtherAcquirer"`
	OtherAcquirerNames string `json:"otherAcquirerNames,omitempty" msgpack:"otherAcquirerNames,omitempty"`
	OtherAcquirerYears string `json:"otherAcquirerYears,omitempty" msgpack:"otherAcquirerYears,omitempty"`
	ReasonForMagnati   string `json:"reasonForMagnati,omitempty" msgpack:"reasonForMagnati,omitempty"`

	RawText string `json:"rawText,omitempty" msgpack:"rawText,omitempty"`
}

// ParsedTradeLicense is the structured record extracted from a trade
// license document.
type ParsedTradeLicense struct {
	LicenseNumber  string `json:"licenseNumber,omitempty" msgpack:"licenseNumber,omitempty"`
	IssueDate      string `json:"issueDate,omitempty" msgpack:"issueDate,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty" msgpack:"expiryDate,omitempty"`
	BusinessName   string `json:"businessName,omitempty" msgpack:"businessName,omitempty"`
	LegalForm      string `json:"legalForm,omitempty" msgpack:"legalForm,omitempty"`
	Activities     string `json:"activities,omitempty" msgpack:"activities,omitempty"`
	Authority      string `json:"authority,omitempty" msgpack:"authority,omitempty"`
	PartnersListed string `json:"partnersListed,omitempty" msgpack:"partnersListed,omitempty"`
	RawText        string `json:"rawText,omitempty" msgpack:"rawText,omitempty"`
}
