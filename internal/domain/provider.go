package domain

// Provider is static-ish reference data for one mobile-money product.
type Provider struct {
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
	Country     string `json:"country"`
	Currency    string `json:"currency"`
	Logo        string `json:"logo,omitempty"`
	IsActive    bool   `json:"isActive"`
}
