package domain

import "testing"

func TestClassifyCostCategory(t *testing.T) {
	tests := []struct {
		category CostCategory
		want     CostClass
	}{
		{CategoryDownPayment, ClassPrincipal},
		{CategoryBalancePayment, ClassPrincipal},
		{CategoryAdditionalBalancePayment, ClassPrincipal},
		{CategoryOverpaymentCredit, ClassPrincipal},
		{CategoryFullAmountBankFee, ClassBankFee},
		{CategoryTelexBankFee, ClassBankFee},
		{CategoryValueTodayBankFee, ClassBankFee},
		{CategoryAdminBankFee, ClassBankFee},
		{CategoryInterBankTransferFee, ClassBankFee},
		{CategoryLocalVAT, ClassTax},
		{CategoryLocalIncomeTax, ClassTax},
		{CategoryLocalImportDuty, ClassLanded},
		{CategoryLocalDelivery, ClassLanded},
		{CategoryDemurrageFee, ClassLanded},
		{CategoryPenaltyFee, ClassLanded},
		{CategoryDHLAdvancePaymentFee, ClassLanded},
		{CategoryLocalImportTax, ClassLanded},
	}

	for _, tt := range tests {
		if got := ClassifyCostCategory(tt.category); got != tt.want {
			t.Errorf("ClassifyCostCategory(%s) = %s, want %s", tt.category, got, tt.want)
		}
	}
}

func TestClassifyCostCategory_UnknownFallsToLanded(t *testing.T) {
	got := ClassifyCostCategory(CostCategory("customs_inspection_fee"))
	if got != ClassLanded {
		t.Errorf("unknown category classified as %s, want landed", got)
	}
	if IsKnownCategory(CostCategory("customs_inspection_fee")) {
		t.Error("customs_inspection_fee should not be a known category")
	}
}

func TestIsBalanceCategory(t *testing.T) {
	if !IsBalanceCategory(CategoryBalancePayment) {
		t.Error("balance_payment should settle an order")
	}
	if !IsBalanceCategory(CategoryAdditionalBalancePayment) {
		t.Error("additional_balance_payment should settle an order")
	}
	if IsBalanceCategory(CategoryDownPayment) {
		t.Error("down_payment should not settle an order")
	}
}
