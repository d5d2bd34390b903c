package types

// Canonical entity labels. Detectors may emit labels outside this set.
const (
	CreditCard      = "CREDIT_CARD"
	IBAN            = "IBAN"
	SwiftCode       = "SWIFT_CODE"
	RoutingNumber   = "ROUTING_NUMBER"
	BankAccount     = "BANK_ACCOUNT"
	BitcoinAddress  = "BITCOIN_ADDRESS"
	EthereumAddress = "ETHEREUM_ADDRESS"

	Email      = "EMAIL"
	Phone      = "PHONE"
	IPAddress  = "IP_ADDRESS"
	IPv6       = "IPV6_ADDRESS"
	MACAddress = "MAC_ADDRESS"

	SSN           = "SSN"
	Name          = "NAME"
	Address       = "ADDRESS"
	DateOfBirth   = "DATE_OF_BIRTH"
	DriverLicense = "DRIVER_LICENSE"
	Passport      = "PASSPORT"

	VIN          = "VIN"
	LicensePlate = "LICENSE_PLATE"

	MedicalRecord = "MEDICAL_RECORD"
	Medicare      = "MEDICARE"
	DEANumber     = "DEA_NUMBER"
	NPI           = "NPI"

	UKNINO        = "UK_NINO"
	CanadaSIN     = "CANADA_SIN"
	FranceINSEE   = "FRANCE_INSEE"
	GermanySteuer = "GERMANY_STEUER"
	IndiaAadhaar  = "INDIA_AADHAAR"
	IndiaPAN      = "INDIA_PAN"

	EmployeeID = "EMPLOYEE_ID"
	TaxID      = "TAX_ID"
)

// Category groups related entity labels.
type Category struct {
	Name   string   `json:"name"`
	Labels []string `json:"labels"`
}

var catalog = []Category{
	{Name: "Financial", Labels: []string{CreditCard, IBAN, SwiftCode, RoutingNumber, BankAccount, BitcoinAddress, EthereumAddress}},
	{Name: "Contact", Labels: []string{Email, Phone, IPAddress, IPv6, MACAddress}},
	{Name: "Personal", Labels: []string{SSN, Name, Address, DateOfBirth, DriverLicense, Passport}},
	{Name: "Vehicle", Labels: []string{VIN, LicensePlate}},
	{Name: "Healthcare", Labels: []string{MedicalRecord, Medicare, DEANumber, NPI}},
	{Name: "International IDs", Labels: []string{UKNINO, CanadaSIN, FranceINSEE, GermanySteuer, IndiaAadhaar, IndiaPAN}},
	{Name: "Corporate", Labels: []string{EmployeeID, TaxID}},
}

// Categories returns a copy of the catalog grouped by category.
func Categories() []Category {
	out := make([]Category, len(catalog))
	for i, c := range catalog {
		out[i] = Category{Name: c.Name, Labels: append([]string(nil), c.Labels...)}
	}
	return out
}

// ListEntityTypes returns every canonical label in catalog order.
func ListEntityTypes() []string {
	var out []string
	for _, c := range catalog {
		out = append(out, c.Labels...)
	}
	return out
}

// CategoryOf returns the category name for label, or "" when label is not
// part of the catalog.
func CategoryOf(label string) string {
	for _, c := range catalog {
		for _, l := range c.Labels {
			if l == label {
				return c.Name
			}
		}
	}
	return ""
}
