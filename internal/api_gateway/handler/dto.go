package handler

// AnalyzeRequest represents a request to reconcile a partner ledger paste
type AnalyzeRequest struct {
	Partner    string `json:"partner" binding:"required"`
	LedgerText string `json:"ledger_text" binding:"required"`
}

// CommitRequest represents a request to confirm payment for selected codes.
// The ledger text is resubmitted so the matched set can be re-derived
// server-side against fresh order state.
type CommitRequest struct {
	Partner       string   `json:"partner" binding:"required"`
	LedgerText    string   `json:"ledger_text" binding:"required"`
	SelectedCodes []string `json:"selected_codes" binding:"required"`
}

// MatchedClaimResponse represents a claim verified against an order
type MatchedClaimResponse struct {
	Code      string `json:"code"`
	Price     int64  `json:"price"`
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// PriceMismatchResponse represents a claim whose price disagrees with the system
type PriceMismatchResponse struct {
	Code         string `json:"code"`
	PartnerPrice int64  `json:"partner_price"`
	SystemPrice  int64  `json:"system_price"`
	OrderID      string `json:"order_id"`
}

// ClaimResponse represents a raw claim with no corresponding order
type ClaimResponse struct {
	Code  string `json:"code"`
	Price int64  `json:"price"`
}

// OrderSummaryResponse represents an order the partner never reported
type OrderSummaryResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Price     int64  `json:"price"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ReconciliationResponse represents a full analysis result in API responses
type ReconciliationResponse struct {
	Matched          []MatchedClaimResponse  `json:"matched"`
	PriceMismatch    []PriceMismatchResponse `json:"price_mismatch"`
	NotInSystem      []ClaimResponse         `json:"not_in_system"`
	MissingInPartner []OrderSummaryResponse  `json:"missing_in_partner"`
	From             string                  `json:"from"`
	To               string                  `json:"to"`
	TotalPayable     int64                   `json:"total_payable"`
	DuplicateClaims  int                     `json:"duplicate_claims"`
}

// CommitResponse represents a successful commit outcome
type CommitResponse struct {
	Committed   int    `json:"committed"`
	TotalAmount int64  `json:"total_amount"`
	BatchTime   string `json:"batch_time"`
}

// PartnerResponse represents a roster entry in API responses
type PartnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// PaymentResponse represents a payment confirmation in API responses
type PaymentResponse struct {
	Code      string `json:"code"`
	Amount    int64  `json:"amount"`
	Partner   string `json:"partner"`
	OrderID   string `json:"order_id"`
	Timestamp string `json:"timestamp"`
}

// PaymentListResponse represents a list of payment confirmations
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
