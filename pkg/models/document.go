package models

// Amount is a currency value in whole Rupiah. Sub-units are not modeled.
type Amount int64

// NonNegative clamps negative values to zero.
func (a Amount) NonNegative() Amount {
	if a < 0 {
		return 0
	}
	return a
}

// ClientInfo identifies the party a document is addressed to.
type ClientInfo struct {
	CompanyName string `json:"companyName"`
	PICName     string `json:"picName"`
	Address     string `json:"address"`
}

// Company is the issuing vendor printed on every document and message.
type Company struct {
	Name     string // Printed name, e.g. "SEMESTA TEKNO"
	Tagline  string // Sub-heading under the signature
	Phone    string // Display phone number
	WhatsApp string // Number used for wa.me links
	Email    string
	Website  string

	// Payment destination
	BankName      string
	BankAccount   string
	AccountHolder string
}

// DefaultCompany returns the vendor profile used when nothing is configured.
func DefaultCompany() Company {
	return Company{
		Name:          "SEMESTA TEKNO",
		Tagline:       "Professional IT Solutions",
		Phone:         "+62 812-2512-9109",
		WhatsApp:      "6281225129109",
		Email:         "info@semestatekno.com",
		Website:       "www.semestatekno.com",
		BankName:      "BNI",
		BankAccount:   "0249532534",
		AccountHolder: "SISWANTO",
	}
}
