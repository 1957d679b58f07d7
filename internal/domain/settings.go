package domain

// Settings is the single-row shop configuration: branding plus the
// message templates the dispatcher renders. Templates use [TokenName]
// placeholders.
type Settings struct {
	ID                      string `json:"id"`
	ShopName                string `json:"shop_name"`
	LogoURL                 string `json:"logo_url,omitempty"`
	CheckoutTemplate        string `json:"checkout_template"`
	CheckinTemplate         string `json:"checkin_template"`
	BalanceReminderTemplate string `json:"balance_reminder_template"`
	CountryCode             string `json:"country_code"`
	InvoiceCustomText       string `json:"invoice_custom_text"`
}
