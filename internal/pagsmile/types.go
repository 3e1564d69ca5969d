package pagsmile

// TradeStatus is the gateway's view of a payment. SUCCESS, FAILED and
// CANCELLED are terminal; nothing transitions out of them.
type TradeStatus string

const (
	StatusInitial    TradeStatus = "INITIAL"
	StatusProcessing TradeStatus = "PROCESSING"
	StatusSuccess    TradeStatus = "SUCCESS"
	StatusFailed     TradeStatus = "FAILED"
	StatusCancelled  TradeStatus = "CANCELLED"
)

func (s TradeStatus) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

type IdentificationType string

const (
	IdentifyCPF  IdentificationType = "CPF"
	IdentifyCNPJ IdentificationType = "CNPJ"
)

// CustomerInfo is the checkout form input. Validation lives in the
// order package; this is just the shape the client submits.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	CPF     string `json:"cpf"`
	ZipCode string `json:"zipCode"`
	City    string `json:"city"`
	State   string `json:"state"`
	Address string `json:"address"`
}

type CustomerIdentification struct {
	Type   IdentificationType `json:"type"`
	Number string             `json:"number"`
}

type Customer struct {
	Identify CustomerIdentification `json:"identify"`
	Name     string                 `json:"name"`
	Email    string                 `json:"email"`
	Phone    string                 `json:"phone"`
}

type Address struct {
	ZipCode      string `json:"zip_code"`
	State        string `json:"state"`
	City         string `json:"city"`
	StreetName   string `json:"street_name"`
	StreetNumber string `json:"street_number"`
}

type DeviceInfo struct {
	UserAgent string `json:"user_agent"`
	IPAddress string `json:"ip_address,omitempty"`
}

// CreateOrderRequest is the /trade/create payload.
type CreateOrderRequest struct {
	AppID          string     `json:"app_id"`
	OutTradeNo     string     `json:"out_trade_no"`
	Method         string     `json:"method"`
	OrderAmount    string     `json:"order_amount"`
	OrderCurrency  string     `json:"order_currency"`
	Subject        string     `json:"subject"`
	Content        string     `json:"content"`
	TradeType      string     `json:"trade_type"`
	Timestamp      string     `json:"timestamp"`
	NotifyURL      string     `json:"notify_url"`
	ReturnURL      string     `json:"return_url"`
	TimeoutExpress string     `json:"timeout_express"`
	Version        string     `json:"version"`
	BuyerID        string     `json:"buyer_id"`
	Customer       Customer   `json:"customer"`
	Address        Address    `json:"address"`
	DeviceInfo     DeviceInfo `json:"device_info"`
}

type CreateOrderResponse struct {
	Code       string `json:"code"`
	Msg        string `json:"msg"`
	OutTradeNo string `json:"out_trade_no"`
	TradeNo    string `json:"trade_no"`
	PrepayID   string `json:"prepay_id"`
}

type QueryCustomer struct {
	Identification struct {
		Number string `json:"number"`
		Type   string `json:"type"`
	} `json:"identification"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	BuyerID  string `json:"buyer_id"`
}

// QueryTransactionResponse is the normalized transaction record the
// gateway echoes back for /trade/query.
type QueryTransactionResponse struct {
	Code          string        `json:"code"`
	Msg           string        `json:"msg"`
	TradeNo       string        `json:"trade_no"`
	OutTradeNo    string        `json:"out_trade_no"`
	Method        string        `json:"method"`
	TradeStatus   TradeStatus   `json:"trade_status"`
	OrderCurrency string        `json:"order_currency"`
	OrderAmount   float64       `json:"order_amount"`
	Customer      QueryCustomer `json:"customer"`
	CreateTime    string        `json:"create_time"`
	UpdateTime    string        `json:"update_time"`
}

// WebhookPayload is the raw asynchronous notification body.
type WebhookPayload struct {
	TradeNo       string      `json:"trade_no"`
	OutTradeNo    string      `json:"out_trade_no"`
	TradeStatus   TradeStatus `json:"trade_status"`
	OrderAmount   float64     `json:"order_amount"`
	OrderCurrency string      `json:"order_currency"`
	Method        string      `json:"method"`
}

// SdkConfig bootstraps the browser-side card-capture SDK. The security
// key is deliberately absent.
type SdkConfig struct {
	AppID      string `json:"app_id"`
	PublicKey  string `json:"public_key"`
	Env        string `json:"env"`
	RegionCode string `json:"region_code"`
}
