package pawapay

import "encoding/json"

// DepositRequest initiates a collection. DepositID is the locally generated
// transaction id, doubling as the idempotency key on the gateway side.
type DepositRequest struct {
	DepositID            string `json:"depositId"`
	Amount               string `json:"amount"`
	Currency             string `json:"currency"`
	Country              string `json:"country,omitempty"`
	Correspondent        string `json:"correspondent"`
	Payer                Party  `json:"payer"`
	CustomerTimestamp    string `json:"customerTimestamp"`
	StatementDescription string `json:"statementDescription,omitempty"`
}

// PayoutRequest initiates a disbursement, keyed by PayoutID.
type PayoutRequest struct {
	PayoutID             string `json:"payoutId"`
	Amount               string `json:"amount"`
	Currency             string `json:"currency"`
	Country              string `json:"country,omitempty"`
	Correspondent        string `json:"correspondent"`
	Recipient            Party  `json:"recipient"`
	CustomerTimestamp    string `json:"customerTimestamp"`
	StatementDescription string `json:"statementDescription,omitempty"`
}

type Party struct {
	Type    string  `json:"type"`
	Address Address `json:"address"`
}

type Address struct {
	Value string `json:"value"`
}

// NewMSISDN builds the payer/recipient party for a phone number.
func NewMSISDN(phoneNumber string) Party {
	return Party{Type: "MSISDN", Address: Address{Value: phoneNumber}}
}

// WidgetSessionRequest creates a hosted-payment session. The provider and
// country are chosen by the user on the hosted page, so only the amount and
// return URL are fixed here.
type WidgetSessionRequest struct {
	DepositID            string `json:"depositId"`
	Amount               string `json:"amount,omitempty"`
	ReturnURL            string `json:"returnUrl"`
	Country              string `json:"country,omitempty"`
	Language             string `json:"language,omitempty"`
	Reason               string `json:"reason,omitempty"`
	StatementDescription string `json:"statementDescription,omitempty"`
}

// TransactionResult is the gateway's view of a deposit or payout, shared by
// initiation responses and status lookups. Raw keeps the undecoded payload
// for the local audit snapshot.
type TransactionResult struct {
	Status       string          `json:"status"`
	Country      string          `json:"country,omitempty"`
	ProviderTxID string          `json:"providerTransactionId,omitempty"`
	Raw          json.RawMessage `json:"-"`
}

// WidgetSession is the hosted-session handle returned by the widget API.
type WidgetSession struct {
	RedirectURL string          `json:"redirectUrl"`
	Raw         json.RawMessage `json:"-"`
}

// transactionPayload mirrors the wire fields the relay cares about.
type transactionPayload struct {
	DepositID    string `json:"depositId,omitempty"`
	PayoutID     string `json:"payoutId,omitempty"`
	Status       string `json:"status"`
	Country      string `json:"country,omitempty"`
	ProviderTxID string `json:"providerTransactionId,omitempty"`
}
