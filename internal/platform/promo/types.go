package promo

import "github.com/ykravets/promoaudit/internal/domain"

// loginRequest is the payload for POST /api/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sortField orders the rule listing by a single column.
type sortField struct {
	Field string `json:"field"`
	Asc   bool   `json:"asc"`
}

type sortSpec struct {
	Fields []sortField `json:"fields"`
}

// listRulesRequest is the payload for POST /discountRule/list. Filter and
// period are always empty objects; the full catalog is paged by offset.
type listRulesRequest struct {
	Count  int      `json:"count"`
	Filter struct{} `json:"filter"`
	Offset int      `json:"offset"`
	Period struct{} `json:"period"`
	Sort   sortSpec `json:"sort"`
}

// listRulesResponse carries one page of catalog rules plus the total count
// reported by the engine.
type listRulesResponse struct {
	Data  []domain.CatalogRule `json:"data"`
	Count int                  `json:"count"`
}

// extSKU identifies a product line item by its external id.
type extSKU struct {
	ID string `json:"id"`
}

// testerItem is a single line item submitted to the rule tester. The engine
// expects the unit price as a string and a pre-computed line amount.
type testerItem struct {
	ExtSKU                extSKU   `json:"extSku"`
	Quantity              float64  `json:"quantity"`
	Price                 string   `json:"price"`
	Discount              float64  `json:"discount"`
	Coupons               []string `json:"coupons"`
	PaidByPoints          float64  `json:"paidByPoints"`
	AppliedDiscountAmount float64  `json:"appliedDiscountAmount"`
	IsFullTank            bool     `json:"isFullTank"`
	Amount                float64  `json:"amount"`
}

// testerRequest is the payload for POST /discountRuleTester/process.
type testerRequest struct {
	Items       []testerItem `json:"items"`
	PromoCodes  string       `json:"promoCodes"`
	CardCode    *string      `json:"cardCode"`
	ClientID    *string      `json:"clientId"`
	PayFormType int          `json:"payFormType"`
	TerminalID  int          `json:"terminalId"`
	Date        string       `json:"date"`
}

// testerData is the successful evaluation body. TotalDiscountAmount has been
// observed both as a number and as a string, so it is decoded loosely and
// coerced by the client.
type testerData struct {
	TotalDiscountAmount any `json:"totalDiscountAmount"`
}

// testerResponse is the envelope of a 200 tester reply. A non-empty Error, or
// a null Data, signals a domain error even on HTTP success.
type testerResponse struct {
	Data  *testerData `json:"data"`
	Error string      `json:"error"`
}
