package entity

// Category labels assigned to normal bills.
const (
	CategoryProvidentFund = "Gpf"
	CategorySalary        = "Salary(eis)"
	CategoryMarketplace   = "Gem"
	CategoryOuterGem      = "Gem(Outer)"
	CategoryPension       = "Pension"
	CategoryUncategorized = "Uncategorized"
)

// Tags found in voucher UserNm values.
const (
	MarkerProvidentFund = "[GPFEIS]"
	MarkerSalary        = "[EIS]"
	MarkerMarketplace   = "[GEM]"
	MarkerPension       = "[Pension]"
)

// Report type identifiers carried in the root Name attribute of exported XML.
const (
	ReportAuthorizationRegister = "RptSancDig_EPaymentAuthorizationIssueRegister"
	ReportCompilationSheet      = "RptSancDig_VoucherCompilationSheet"
	ReportSanctionDetail        = "RptSancDig_SanctionDetail"
)
