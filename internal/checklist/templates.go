// Package checklist derives the document checklist for a case from the
// embedded template packs.
package checklist

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

//go:embed templates.yaml
var templatesYAML []byte

// Pack names inside templates.yaml.
const (
	packLowRisk             = "low-risk"
	packHighRiskAdditional  = "high-risk-additional"
	packEcomAdditional      = "ecom-additional"
	packBranchWithMain      = "branch-with-main"
	packBranchSeparateExtra = "branch-separate-extra"
)

var packs map[string][]models.ChecklistTemplate

func init() {
	if err := yaml.Unmarshal(templatesYAML, &packs); err != nil {
		panic(fmt.Sprintf("checklist: invalid embedded templates.yaml: %v", err))
	}
	for _, name := range []string{packLowRisk, packHighRiskAdditional, packEcomAdditional, packBranchWithMain, packBranchSeparateExtra} {
		if len(packs[name]) == 0 {
			panic(fmt.Sprintf("checklist: embedded templates.yaml missing pack %q", name))
		}
	}
}

// CategoriesOrder is the fixed rendering order of checklist categories.
var CategoriesOrder = []string{"Forms", "Legal", "KYC", "Bank", "Shop"}

// DocumentTypeMap maps a slot id to the filename token used by the
// rename engine. Slots absent from this map fall back to a sanitized
// form of their label.
var DocumentTypeMap = map[string]string{
	"ack-form":                  "AcknowledgmentForm",
	"mdf":                       "MDF",
	"trade-license":             "TradeLicense",
	"shop-photos-geotag":        "ShopPhoto_Geotag",
	"trademark-cert":            "TrademarkCert",
	"colored-photos":            "ColoredPhoto",
	"photo-inside":              "ShopPhoto_Inside",
	"photo-outside":             "ShopPhoto_Outside",
	"signed-fvr":                "FVR",
	"passport-eid":              "KYC",
	"tenancy-ejari":             "Tenancy",
	"electricity-bill":          "ElectricityBill",
	"lease-agreement":           "LeaseAgreement",
	"kiosk-permit":              "KioskPermit",
	"main-moa":                  "MOA_Main",
	"amended-moa":               "MOA_Amended",
	"poa":                       "POA",
	"articles-assoc":            "ArticlesOfAssociation",
	"share-cert":                "ShareCertificate",
	"cert-incumbency":           "CertIncumbency",
	"board-resolution":          "BoardResolution",
	"bank-statement":            "BankStatement_1M",
	"bank-statement-3m":         "BankStatement_3M",
	"welcome-letter":            "WelcomeLetter",
	"poh-email":                 "POH_Email",
	"supplier-invoice":          "SupplierInvoice",
	"checklist-doc":             "Checklist",
	"seq":                       "SEQ",
	"dual-goods":                "DualGoods",
	"vat-cert":                  "VAT_Certificate",
	"vat-declaration":           "VAT_Declaration",
	"branch-form":               "BranchForm",
	"sister-company-bs":         "BankStatement_Sister",
	"personal-statement":        "PersonalStatement",
	"signatory-statement":       "SignatoryStatement",
	"home-country-statement":    "HomeCountryStatement",
	"partner-visa-tl":           "PartnerVisa_TL",
	"uae-address-proof":         "UAE_AddressProof",
	"non-resident-address":      "NonResident_Address",
	"non-resident-mdf-note":     "NonResident_MDF_Note",
	"sanction-undertaking":      "SanctionUndertaking",
	"pep-ecdd":                  "PEP_ECDD",
	"pep-form":                  "PEP_Form",
	"ecdd-normal":               "ECDD",
	"seq-word":                  "SEQ_Word",
	"goaml-screenshot":          "GoAML",
	"aml-policy":                "AML_Policy",
	"ecom-template":             "ECOM_Template",
	"sanction-undertaking-ecom": "SanctionUndertaking_ECOM",
}

// FolderMap maps a checklist category to its archive folder.
var FolderMap = map[string]string{
	"Forms": "07_Forms",
	"Legal": "06_LegalDocuments",
	"KYC":   "03_KYC",
	"Bank":  "04_BankDocuments",
	"Shop":  "05_ShopDocuments",
}

// FallbackFolder receives files whose category has no folder mapping.
const FallbackFolder = "08_Other"

// Common discrepancies from the review team's tracking sheet, surfaced
// as reference material alongside the checklist.

var MinorDiscrepancies = []string{
	"Rate mismatch between MDF and Business Review",
	"Rental mismatch between MDF and Business Review",
	"DCC mismatch between MDF and Business Review",
	"Number of terminals incorrect or missing",
	"POH email / IBAN proof missing or mismatched",
	"VAT email / VAT certificate missing or mismatched",
	"Email address incomplete or missing",
	"Address incomplete",
	"Incomplete pages of Trade License",
	"Bank account name mismatch",
	"1 month bank statement not provided",
	"Scanned docs are not clear",
	"Stamps & collection dates missing in documents",
}

var MajorDiscrepancies = []string{
	"Expired Trade License",
	"Expired Tenancy / Ejari",
	"Expired KYC documents (Passport / Emirates ID)",
	"Signature mismatch across documents",
	"Main MOA not attached or signatory not mentioned",
	"Authorized signatory not mentioned in documents",
}

var ImportantReminders = []string{
	"Always open and review every document — attach a printout to track what has been reviewed",
	"Track which documents have been missed during the review",
	"Review MDF (Merchant Details Form) thoroughly — ensure all pages are checked, all sections filled, nothing skipped",
	"Check KYC expirations — always review each KYC document for expiration and ensure all are up-to-date",
	"Review shareholder information in Trade License — verify each shareholder is listed and corresponding KYC is attached",
}
