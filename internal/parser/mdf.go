package parser

import (
	"regexp"
	"strings"

	"github.com/Followingae/rfm-case-submit/internal/models"
)

// SanctionCountries is the fixed watch list scanned for exposure rows.
var SanctionCountries = []string{
	"Iran", "Sudan", "Syria", "North Korea", "Russia",
	"Cuba", "Ghana", "Nigeria", "South Sudan",
	"St. Kitts", "St. Vincent",
}

// CardTypes is the fixed list of card networks recognized in the fee
// schedule section.
var CardTypes = []string{
	"Visa", "Mastercard", "Discover", "Diners", "JCB",
	"China UnionPay", "UnionPay", "Premium", "International",
	"Alipay", "Debit", "DCC",
}

// Label detectors for the merchant information and settlement sections.
// Each detector is independent; a pathological line matching two labels
// populates both fields from the same source line.
var (
	reLegalName     = regexp.MustCompile(`(?i)merchant.*legal.*name`)
	reDBA           = regexp.MustCompile(`(?i)doing.*business.*as`)
	reEmirateStart  = regexp.MustCompile(`(?i)^emirate\b`)
	reEmirateLabel  = regexp.MustCompile(`(?i)\bemirate\s*[:\-]`)
	reEmirate       = regexp.MustCompile(`(?i)emirate`)
	reCountryStart  = regexp.MustCompile(`(?i)^country\b`)
	reCountry       = regexp.MustCompile(`(?i)country`)
	reSanctionWord  = regexp.MustCompile(`(?i)sanction`)
	reBirthWord     = regexp.MustCompile(`(?i)birth`)
	reAddressStart  = regexp.MustCompile(`(?i)^address\b`)
	reEmailWord     = regexp.MustCompile(`(?i)email`)
	reWebWord       = regexp.MustCompile(`(?i)web`)
	rePOBox         = regexp.MustCompile(`(?i)p\.?\s*o\.?\s*box`)
	rePOBoxValue    = regexp.MustCompile(`(?i)p\.?\s*o\.?\s*box\s*[:\-]?\s*(\d+)`)
	reMobileNo      = regexp.MustCompile(`(?i)mobile.*no`)
	reContactWord   = regexp.MustCompile(`(?i)contact`)
	reTelephoneNo   = regexp.MustCompile(`(?i)telephone.*no`)
	reWorkWord      = regexp.MustCompile(`(?i)work`)
	reEmail1        = regexp.MustCompile(`(?i)email.*address.*1`)
	reEmail2        = regexp.MustCompile(`(?i)email.*address.*2`)
	reShopLocation  = regexp.MustCompile(`(?i)shop.*location`)
	reBusinessType  = regexp.MustCompile(`(?i)(?:type|nature).*business`)
	reWebAddress    = regexp.MustCompile(`(?i)web.*address`)
	reContactPerson = regexp.MustCompile(`(?i)contact.*person`)
	reNameStart     = regexp.MustCompile(`(?i)^name\b`)
	reTitlePosition = regexp.MustCompile(`(?i)title.*position`)
	rePosition      = regexp.MustCompile(`(?i)position`)
	reTitleOrPos    = regexp.MustCompile(`(?i)(?:title|position)`)
	reMobileWord    = regexp.MustCompile(`(?i)mobile`)
	reWorkTelephone = regexp.MustCompile(`(?i)work.*telephone`)

	reOneOffFee     = regexp.MustCompile(`(?i)one.?off.*fee`)
	reAnnualRent    = regexp.MustCompile(`(?i)annual.*rent`)
	rePOSWindow     = regexp.MustCompile(`(?i)pos`)
	reMPOSWindow    = regexp.MustCompile(`(?i)mpos`)
	reEcomWindow    = regexp.MustCompile(`(?i)ecom`)
	reSetupFee      = regexp.MustCompile(`(?i)set.*up.*fee`)
	reAnnualMaint   = regexp.MustCompile(`(?i)annual.*maintenance`)
	reSecurityColl  = regexp.MustCompile(`(?i)security.*collateral`)
	reRefundFee     = regexp.MustCompile(`(?i)refund.*fee`)
	reMSVShortfall  = regexp.MustCompile(`(?i)msv.*shortfall`)
	reChargeback    = regexp.MustCompile(`(?i)chargeback.*(?:handling|fee)`)
	rePortalFee     = regexp.MustCompile(`(?i)merchant.*portal.*fee`)
	reBizInsight    = regexp.MustCompile(`(?i)business.*insight`)
	reNumTerminals  = regexp.MustCompile(`(?i)number.*terminal`)
	rePOSFlag       = regexp.MustCompile(`(?i)\bpos\b`)
	reEcomFlag      = regexp.MustCompile(`(?i)e.?commerce`)
	reMPOSFlag      = regexp.MustCompile(`(?i)mpos`)
	reMOTOFlag      = regexp.MustCompile(`(?i)moto`)
	reCheckMark     = regexp.MustCompile(`(?i)check|tick|☑|☒|✓|✔|x\b`)

	reIBANWord      = regexp.MustCompile(`(?i)\biban\b`)
	reIBANInline    = regexp.MustCompile(`[A-Z]{2}\d{2}[\w\s]{10,30}`)
	reIBANNextLine  = regexp.MustCompile(`[A-Z]{2}\d{2}\w{10,30}`)
	reAccountNo     = regexp.MustCompile(`(?i)account.*no`)
	reAccountDigits = regexp.MustCompile(`[\d\s]{5,}`)
	reAccountTitle  = regexp.MustCompile(`(?i)account.*title`)
	reBankName      = regexp.MustCompile(`(?i)bank.*name`)
	reExistingWord  = regexp.MustCompile(`(?i)existing`)
	reSwiftWord     = regexp.MustCompile(`(?i)swift`)
	reSwiftCode     = regexp.MustCompile(`[A-Z]{4}[A-Z]{2}[A-Z0-9]{2,5}`)
	reBranchName    = regexp.MustCompile(`(?i)branch.*name`)
	rePaymentPlan   = regexp.MustCompile(`(?i)payment.*plan`)

	reOwnerRow      = regexp.MustCompile(`(?i)owner|partner|shareholder`)
	reSharesCue     = regexp.MustCompile(`(?i)shares|%`)
	reHeaderish     = regexp.MustCompile(`(?i)owner|partner|shareholder|name|nationality`)
	reDigit         = regexp.MustCompile(`\d`)
	reSectionBreak  = regexp.MustCompile(`(?i)section|schedule|business`)
	rePercToken     = regexp.MustCompile(`(\d+\.?\d*)\s*%`)
	reColSplit      = regexp.MustCompile(`\s{2,}|\t`)

	reProjVolume    = regexp.MustCompile(`(?i)projected.*transaction.*volume`)
	reProjCount     = regexp.MustCompile(`(?i)projected.*transaction.*count`)
	reSourceIncome  = regexp.MustCompile(`(?i)source.*income`)
	reIncomeCountry = regexp.MustCompile(`(?i)country.*income`)
	reKeySupplier   = regexp.MustCompile(`(?i)key.*supplier`)
	reKeyCustomer   = regexp.MustCompile(`(?i)key.*customer`)
	rePartnerBreak  = regexp.MustCompile(`(?i)section|schedule|key|sanction|acquirer`)
	rePartnerHdr    = regexp.MustCompile(`(?i)country.*(?:company|name)`)
	reTableColumn   = regexp.MustCompile(`(?i)company|supplier|customer`)
	reCapitalWord   = regexp.MustCompile(`(?i)capital`)
	reSourceCapital = regexp.MustCompile(`(?i)source.*(?:initial|capital)`)
	reActivityDet   = regexp.MustCompile(`(?i)details.*activit(?:y|ies)`)
	reYearsInUAE    = regexp.MustCompile(`(?i)how.*long.*(?:company|business).*uae`)
	reExactNature   = regexp.MustCompile(`(?i)exact.*nature.*business`)
	reYesWord       = regexp.MustCompile(`(?i)\byes\b`)
	reYesNoSplit    = regexp.MustCompile(`(?i)\b(?:yes|no)\b`)
	reOtherAcquirer = regexp.MustCompile(`(?i)other.*(?:relationship|acquirer)`)
	reAcquirerName  = regexp.MustCompile(`(?i)name.*acquirer`)
	reLengthBiz     = regexp.MustCompile(`(?i)length.*(?:business|relationship)`)
	reReasonFor     = regexp.MustCompile(`(?i)reason.*(?:approaching|magnati)`)

	rePercentTokens = regexp.MustCompile(`(\d+\.?\d*)\s*%?`)
)

var cardTypeRes = buildNameRes(CardTypes)
var sanctionRes = buildNameRes(SanctionCountries)

func buildNameRes(names []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(names))
	for i, n := range names {
		res[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(n))
	}
	return res
}

// ParseMDF extracts a structured record from Merchant Details Form
// text. Each new extraction produces a fresh record; callers replace
// any previous record wholesale.
func ParseMDF(text string) models.ParsedMDF {
	data := models.ParsedMDF{
		RawText:           text,
		FeeSchedule:       []models.CardRate{},
		TerminalFees:      []models.TerminalFee{},
		Shareholders:      []models.ShareholderRow{},
		KeySuppliers:      []models.TradePartner{},
		KeyCustomers:      []models.TradePartner{},
		SanctionsExposure: []models.TradeExposure{},
	}

	lines := splitLines(text)

	for i, line := range lines {
		nextLine := lineAt(lines, i+1)

		// Section 1: merchant information
		if reLegalName.MatchString(line) {
			data.MerchantLegalName = fieldAfter(lines, i, reLegalName)
		}
		if reDBA.MatchString(line) {
			data.DBA = fieldAfter(lines, i, reDBA)
		}
		if reEmirateStart.MatchString(line) || reEmirateLabel.MatchString(line) {
			data.Emirate = fieldAfter(lines, i, reEmirate)
		}
		if reCountryStart.MatchString(line) && !reSanctionWord.MatchString(line) &&
			!reBirthWord.MatchString(line) && !reIncomeCountry.MatchString(line) &&
			!reTableColumn.MatchString(line) {
			data.Country = fieldAfter(lines, i, reCountry)
		}
		if reAddressStart.MatchString(line) && !reEmailWord.MatchString(line) && !reWebWord.MatchString(line) {
			data.Address = nextLine
		}
		if rePOBox.MatchString(line) {
			if m := rePOBoxValue.FindStringSubmatch(line); m != nil {
				data.POBox = m[1]
			} else {
				data.POBox = nextLine
			}
		}
		if reMobileNo.MatchString(line) &&
			!reContactWord.MatchString(lineAt(lines, i-1)) &&
			!reContactWord.MatchString(lineAt(lines, i-2)) {
			data.MobileNo = phoneIn(line + " " + nextLine)
		}
		if reTelephoneNo.MatchString(line) && !reWorkWord.MatchString(line) {
			data.TelephoneNo = phoneIn(line + " " + nextLine)
		}
		if reEmail1.MatchString(line) {
			if v := emailIn(line); v != "" {
				data.Email1 = v
			} else {
				data.Email1 = emailIn(nextLine)
			}
		}
		if reEmail2.MatchString(line) {
			if v := emailIn(line); v != "" {
				data.Email2 = v
			} else {
				data.Email2 = emailIn(nextLine)
			}
		}
		if reShopLocation.MatchString(line) {
			data.ShopLocation = fieldAfter(lines, i, reShopLocation)
		}
		if reBusinessType.MatchString(line) {
			data.BusinessType = fieldAfter(lines, i, reBusinessType)
		}
		if reWebAddress.MatchString(line) {
			data.WebAddress = fieldAfter(lines, i, reWebAddress)
		}

		// Section 2: contact person block, details on following lines
		if reContactPerson.MatchString(line) {
			for j := i + 1; j < i+8 && j < len(lines); j++ {
				cl := lines[j]
				if reNameStart.MatchString(cl) {
					data.ContactName = fieldAfter(lines, j, regexp.MustCompile(`name`))
				}
				if reTitlePosition.MatchString(cl) || rePosition.MatchString(cl) {
					data.ContactTitle = fieldAfter(lines, j, reTitleOrPos)
				}
				if reMobileWord.MatchString(cl) {
					data.ContactMobile = phoneIn(cl + " " + lineAt(lines, j+1))
				}
				if reWorkTelephone.MatchString(cl) {
					data.ContactWorkPhone = phoneIn(cl + " " + lineAt(lines, j+1))
				}
			}
		}

		// Section 3: card-network transaction rates. Up to two
		// percentages on the line are POS and ECOM rates respectively.
		if reDigit.MatchString(line) {
			for ci, re := range cardTypeRes {
				if re.MatchString(line) {
					tokens := rePercentTokens.FindAllStringSubmatch(line, -1)
					if len(tokens) >= 1 {
						rate := models.CardRate{CardType: CardTypes[ci], POSRate: tokens[0][1]}
						if len(tokens) >= 2 {
							rate.EcomRate = tokens[1][1]
						}
						data.FeeSchedule = append(data.FeeSchedule, rate)
					}
				}
			}
		}

		// Terminal and setup fees
		if reOneOffFee.MatchString(line) {
			data.TerminalFees = append(data.TerminalFees, models.TerminalFee{
				Category: "pos", Label: "One-off Fee", Amount: numberNear(lines, i),
			})
		}
		if reAnnualRent.MatchString(line) && rePOSWindow.MatchString(window(lines, i, 3)) {
			data.TerminalFees = append(data.TerminalFees, models.TerminalFee{
				Category: "pos", Label: "Annual Rent", Amount: numberNear(lines, i),
			})
		}
		if reSetupFee.MatchString(line) {
			category := "other"
			switch {
			case reMPOSWindow.MatchString(window(lines, i, 5)):
				category = "mpos"
			case reEcomWindow.MatchString(window(lines, i, 5)):
				category = "ecom"
			}
			data.TerminalFees = append(data.TerminalFees, models.TerminalFee{
				Category: category, Label: "Setup Fee", Amount: numberNear(lines, i),
			})
		}
		if reAnnualMaint.MatchString(line) {
			data.TerminalFees = append(data.TerminalFees, models.TerminalFee{
				Category: "ecom", Label: "Annual Maintenance Fee", Amount: numberNear(lines, i),
			})
		}
		if reSecurityColl.MatchString(line) {
			data.TerminalFees = append(data.TerminalFees, models.TerminalFee{
				Category: "ecom", Label: "Security Collateral", Amount: numberNear(lines, i),
			})
		}
		if reRefundFee.MatchString(line) {
			data.RefundFee = numberNear(lines, i)
		}
		if reMSVShortfall.MatchString(line) {
			data.MSVShortfall = numberNear(lines, i)
		}
		if reChargeback.MatchString(line) {
			data.ChargebackFee = numberNear(lines, i)
		}
		if rePortalFee.MatchString(line) {
			data.PortalFee = numberNear(lines, i)
		}
		if reBizInsight.MatchString(line) {
			data.BusinessInsightFee = numberNear(lines, i)
		}

		// Section 4: POS details. Product flags require the product
		// keyword and a checkbox cue on the same line.
		if reNumTerminals.MatchString(line) {
			data.NumTerminals = numberNear(lines, i)
		}
		if rePOSFlag.MatchString(line) && reCheckMark.MatchString(line) {
			data.ProductPOS = true
		}
		if reEcomFlag.MatchString(line) && reCheckMark.MatchString(line) {
			data.ProductECOM = true
		}
		if reMPOSFlag.MatchString(line) && reCheckMark.MatchString(line) {
			data.ProductMPOS = true
		}
		if reMOTOFlag.MatchString(line) && reCheckMark.MatchString(line) {
			data.ProductMOTO = true
		}

		// Section 5: settlement
		if reIBANWord.MatchString(line) {
			if m := reIBANInline.FindString(line); m != "" {
				data.IBAN = strings.ReplaceAll(m, " ", "")
			} else if m := reIBANNextLine.FindString(nextLine); m != "" {
				data.IBAN = strings.ReplaceAll(m, " ", "")
			}
		}
		if reAccountNo.MatchString(line) && !reIBANWord.MatchString(line) {
			if m := reAccountDigits.FindString(nextLine); m != "" {
				data.AccountNo = strings.TrimSpace(m)
			}
		}
		if reAccountTitle.MatchString(line) {
			data.AccountTitle = fieldAfter(lines, i, reAccountTitle)
		}
		if reBankName.MatchString(line) && !reExistingWord.MatchString(window(lines, i, 3)) {
			data.BankName = fieldAfter(lines, i, reBankName)
		}
		if reSwiftWord.MatchString(line) {
			if m := reSwiftCode.FindString(line); m != "" {
				data.SwiftCode = m
			} else if m := reSwiftCode.FindString(nextLine); m != "" {
				data.SwiftCode = m
			}
		}
		if reBranchName.MatchString(line) {
			data.BranchName = fieldAfter(lines, i, reBranchName)
		}
		if rePaymentPlan.MatchString(line) {
			data.PaymentPlan = fieldAfter(lines, i, rePaymentPlan)
		}

		// KYC schedule: shareholder table. Triggered by an owner/
		// partner/shareholder header with a shares/% cue, then a bounded
		// forward scan over candidate rows.
		if reOwnerRow.MatchString(line) && reSharesCue.MatchString(line) {
			for j := i + 1; j < i+20 && j < len(lines); j++ {
				shLine := lines[j]
				if reHeaderish.MatchString(shLine) && !reDigit.MatchString(shLine) {
					continue
				}
				if reSectionBreak.MatchString(shLine) {
					break
				}
				m := rePercToken.FindStringSubmatchIndex(shLine)
				if m == nil {
					continue
				}
				perc := shLine[m[2]:m[3]]
				before := strings.TrimSpace(shLine[:m[0]])
				after := strings.TrimSpace(shLine[m[1]:])
				parts := reColSplit.Split(after, -1)
				row := models.ShareholderRow{Name: before, SharesPercentage: perc}
				if len(parts) > 0 {
					row.Nationality = parts[0]
				}
				if len(parts) > 1 {
					row.ResidenceStatus = parts[1]
				}
				if len(parts) > 2 {
					row.CountryOfBirth = parts[2]
				}
				data.Shareholders = append(data.Shareholders, row)
			}
		}

		// KYC: business projections
		if reProjVolume.MatchString(line) {
			data.ProjectedMonthlyVolume = fieldAfter(lines, i, reProjVolume)
		}
		if reProjCount.MatchString(line) {
			data.ProjectedMonthlyCount = fieldAfter(lines, i, reProjCount)
		}
		if reSourceIncome.MatchString(line) && !reCapitalWord.MatchString(line) {
			data.SourceOfIncome = fieldAfter(lines, i, reSourceIncome)
		}
		if reIncomeCountry.MatchString(line) {
			data.IncomeCountry = fieldAfter(lines, i, reIncomeCountry)
		}
		if reSourceCapital.MatchString(line) {
			data.SourceOfCapital = fieldAfter(lines, i, reSourceCapital)
		}
		if reActivityDet.MatchString(line) {
			data.ActivityDetails = fieldAfter(lines, i, reActivityDet)
		}
		if reYearsInUAE.MatchString(line) {
			data.YearsInUAE = fieldAfter(lines, i, reYearsInUAE)
		}
		if reExactNature.MatchString(line) {
			data.ExactBusinessNature = fieldAfter(lines, i, reExactNature)
		}

		// KYC: key supplier and customer tables, columnar rows after
		// the table header
		if reKeySupplier.MatchString(line) {
			data.KeySuppliers = append(data.KeySuppliers, tradePartnerRows(lines, i)...)
		}
		if reKeyCustomer.MatchString(line) {
			data.KeyCustomers = append(data.KeyCustomers, tradePartnerRows(lines, i)...)
		}

		// KYC: sanction-country exposure, one row per watch-list country
		for si, re := range sanctionRes {
			if !re.MatchString(line) {
				continue
			}
			country := SanctionCountries[si]
			if hasExposure(data.SanctionsExposure, country) {
				continue
			}
			hasYes := reYesWord.MatchString(line)
			exposure := models.TradeExposure{Country: country, HasBusiness: hasYes}
			if m := rePercToken.FindStringSubmatch(line); m != nil {
				exposure.Percentage = m[1]
			}
			if hasYes {
				segments := reYesNoSplit.Split(line, -1)
				exposure.Goods = strings.TrimSpace(segments[len(segments)-1])
			}
			data.SanctionsExposure = append(data.SanctionsExposure, exposure)
		}

		// KYC: other acquirer relationship
		if reOtherAcquirer.MatchString(line) {
			data.HasOtherAcquirer = reYesWord.MatchString(line) || reYesWord.MatchString(nextLine)
		}
		if reAcquirerName.MatchString(line) {
			data.OtherAcquirerNames = fieldAfter(lines, i, reAcquirerName)
		}
		if reLengthBiz.MatchString(line) {
			data.OtherAcquirerYears = fieldAfter(lines, i, reLengthBiz)
		}
		if reReasonFor.MatchString(line) {
			data.ReasonForMagnati = fieldAfter(lines, i, reReasonFor)
		}
	}

	return data
}

// window joins up to n lines preceding lines[i] for context cues.
func window(lines []string, i, n int) string {
	start := i - n
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:i], " ")
}

// tradePartnerRows collects columnar country/company/percentage rows
// following a key-supplier or key-customer table header.
func tradePartnerRows(lines []string, i int) []models.TradePartner {
	var rows []models.TradePartner
	for j := i + 1; j < i+6 && j < len(lines); j++ {
		pl := lines[j]
		if rePartnerBreak.MatchString(pl) {
			break
		}
		if rePartnerHdr.MatchString(pl) {
			continue
		}
		parts := reColSplit.Split(pl, -1)
		if len(parts) < 2 {
			continue
		}
		row := models.TradePartner{Country: strings.TrimSpace(parts[0]), Company: strings.TrimSpace(parts[1])}
		if len(parts) > 2 {
			if m := rePercToken.FindStringSubmatch(parts[2]); m != nil {
				row.Percentage = m[1]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func hasExposure(rows []models.TradeExposure, country string) bool {
	for _, r := range rows {
		if strings.EqualFold(r.Country, country) {
			return true
		}
	}
	return false
}
