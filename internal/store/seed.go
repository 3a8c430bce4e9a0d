package store

import "github.com/migishaone/xenovaPay/internal/domain"

// seedProviders is the fixed provider list loaded at process start. Codes
// follow the processor's provider identifiers.
var seedProviders = []domain.Provider{
	{Code: "MTN_MOMO_RWA", DisplayName: "MTN Mobile Money", Country: "RWA", Currency: "RWF", IsActive: true},
	{Code: "AIRTEL_RWA", DisplayName: "Airtel Money", Country: "RWA", Currency: "RWF", IsActive: true},
	{Code: "MTN_MOMO_UGA", DisplayName: "MTN Mobile Money", Country: "UGA", Currency: "UGX", IsActive: true},
	{Code: "AIRTEL_OAPI_UGA", DisplayName: "Airtel Money", Country: "UGA", Currency: "UGX", IsActive: true},
	{Code: "MTN_MOMO_ZMB", DisplayName: "MTN Mobile Money", Country: "ZMB", Currency: "ZMW", IsActive: true},
	{Code: "AIRTEL_OAPI_ZMB", DisplayName: "Airtel Money", Country: "ZMB", Currency: "ZMW", IsActive: true},
	{Code: "MTN_MOMO_GHA", DisplayName: "MTN Mobile Money", Country: "GHA", Currency: "GHS", IsActive: true},
	{Code: "VODAFONE_GHA", DisplayName: "Vodafone Cash", Country: "GHA", Currency: "GHS", IsActive: false},
}
