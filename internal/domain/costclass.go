// internal/domain/costclass.go
package domain

// CostCategory identifies what a cost entry was paid for. The set is owned by
// the data-entry forms; values not listed here still classify (see Landed).
type CostCategory string

const (
	// Principal payments
	CategoryDownPayment              CostCategory = "down_payment"
	CategoryBalancePayment           CostCategory = "balance_payment"
	CategoryAdditionalBalancePayment CostCategory = "additional_balance_payment"
	CategoryOverpaymentCredit        CostCategory = "overpayment_credit"

	// Bank fees
	CategoryFullAmountBankFee    CostCategory = "full_amount_bank_fee"
	CategoryTelexBankFee         CostCategory = "telex_bank_fee"
	CategoryValueTodayBankFee    CostCategory = "value_today_bank_fee"
	CategoryAdminBankFee         CostCategory = "admin_bank_fee"
	CategoryInterBankTransferFee CostCategory = "inter_bank_transfer_fee"

	// Taxes (never allocated into true cost)
	CategoryLocalVAT       CostCategory = "local_vat"
	CategoryLocalIncomeTax CostCategory = "local_income_tax"

	// Landed costs
	CategoryLocalImportDuty      CostCategory = "local_import_duty"
	CategoryLocalDelivery        CostCategory = "local_delivery"
	CategoryDemurrageFee         CostCategory = "demurrage_fee"
	CategoryPenaltyFee           CostCategory = "penalty_fee"
	CategoryDHLAdvancePaymentFee CostCategory = "dhl_advance_payment_fee"
	CategoryLocalImportTax       CostCategory = "local_import_tax"
)

// CostClass partitions cost categories into the four buckets the allocator
// works with.
type CostClass int

const (
	ClassPrincipal CostClass = iota
	ClassBankFee
	ClassTax
	ClassLanded
)

func (c CostClass) String() string {
	switch c {
	case ClassPrincipal:
		return "principal"
	case ClassBankFee:
		return "bank_fee"
	case ClassTax:
		return "tax"
	default:
		return "landed"
	}
}

// ClassifyCostCategory maps a category into exactly one cost class. Anything
// not recognized as a principal payment, bank fee or tax counts as a landed
// cost; an unclassified new category therefore lands in true cost rather than
// silently disappearing.
func ClassifyCostCategory(cat CostCategory) CostClass {
	switch cat {
	case CategoryDownPayment,
		CategoryBalancePayment,
		CategoryAdditionalBalancePayment,
		CategoryOverpaymentCredit:
		return ClassPrincipal
	case CategoryFullAmountBankFee,
		CategoryTelexBankFee,
		CategoryValueTodayBankFee,
		CategoryAdminBankFee,
		CategoryInterBankTransferFee:
		return ClassBankFee
	case CategoryLocalVAT,
		CategoryLocalIncomeTax:
		return ClassTax
	default:
		return ClassLanded
	}
}

// IsKnownCategory reports whether cat is one of the categories the data-entry
// forms produce today. Useful for flagging entries that fell into the landed
// bucket only because nobody classified them.
func IsKnownCategory(cat CostCategory) bool {
	switch cat {
	case CategoryDownPayment, CategoryBalancePayment, CategoryAdditionalBalancePayment,
		CategoryOverpaymentCredit, CategoryFullAmountBankFee, CategoryTelexBankFee,
		CategoryValueTodayBankFee, CategoryAdminBankFee, CategoryInterBankTransferFee,
		CategoryLocalVAT, CategoryLocalIncomeTax, CategoryLocalImportDuty,
		CategoryLocalDelivery, CategoryDemurrageFee, CategoryPenaltyFee,
		CategoryDHLAdvancePaymentFee, CategoryLocalImportTax:
		return true
	}
	return false
}

// IsBalanceCategory reports whether cat settles the remaining balance of an
// order. Orders are considered settled once such an entry has a payment date.
func IsBalanceCategory(cat CostCategory) bool {
	return cat == CategoryBalancePayment || cat == CategoryAdditionalBalancePayment
}
