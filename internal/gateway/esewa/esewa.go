// Package esewa implements the eSewa ePay v2 form-post contract: the server
// signs the payment parameters, the browser submits them to the gateway as a
// full-page HTML form, and the gateway calls back with a base64 JSON payload.
package esewa

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/edusekai/platform-api/internal/config"
)

// SignedFieldNames is the fixed field list covered by the request signature,
// in signing order. Required verbatim by the gateway.
const SignedFieldNames = "total_amount,transaction_uuid,product_code"

// FormFields is the complete hidden-field set the browser posts to the
// gateway. Field names match the gateway's form contract exactly.
type FormFields struct {
	Amount                string `json:"amount"`
	TaxAmount             string `json:"tax_amount"`
	TotalAmount           string `json:"total_amount"`
	TransactionUUID       string `json:"transaction_uuid"`
	ProductCode           string `json:"product_code"`
	ProductServiceCharge  string `json:"product_service_charge"`
	ProductDeliveryCharge string `json:"product_delivery_charge"`
	SuccessURL            string `json:"success_url"`
	FailureURL            string `json:"failure_url"`
	SignedFieldNames      string `json:"signed_field_names"`
	Signature             string `json:"signature"`
}

// Callback is the decoded gateway redirect payload.
type Callback struct {
	TransactionCode  string `json:"transaction_code"`
	Status           string `json:"status"`
	TotalAmount      string `json:"total_amount"`
	TransactionUUID  string `json:"transaction_uuid"`
	ProductCode      string `json:"product_code"`
	SignedFieldNames string `json:"signed_field_names"`
	Signature        string `json:"signature"`
}

// StatusComplete is the only callback status that confirms payment.
const StatusComplete = "COMPLETE"

var errInvalidCallback = errors.New("invalid esewa callback data")

// Client prepares signed payment forms and decodes gateway callbacks.
type Client struct {
	cfg config.EsewaConfig
}

// NewClient constructs a Client.
func NewClient(cfg config.EsewaConfig) *Client {
	return &Client{cfg: cfg}
}

// GatewayURL is the form-post target.
func (c *Client) GatewayURL() string {
	return c.cfg.GatewayURL
}

// Sign computes the HMAC-SHA256 signature over the canonical message for the
// signed fields, base64-encoded.
func (c *Client) Sign(totalAmount, transactionUUID string) string {
	message := fmt.Sprintf("total_amount=%s,transaction_uuid=%s,product_code=%s",
		totalAmount, transactionUUID, c.cfg.ProductCode)
	mac := hmac.New(sha256.New, []byte(c.cfg.ClientSecret))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// BuildForm assembles the complete signed field set for one transaction.
func (c *Client) BuildForm(amount, transactionUUID string) FormFields {
	return FormFields{
		Amount:                amount,
		TaxAmount:             "0",
		TotalAmount:           amount,
		TransactionUUID:       transactionUUID,
		ProductCode:           c.cfg.ProductCode,
		ProductServiceCharge:  "0",
		ProductDeliveryCharge: "0",
		SuccessURL:            c.cfg.SuccessURL,
		FailureURL:            c.cfg.FailureURL,
		SignedFieldNames:      SignedFieldNames,
		Signature:             c.Sign(amount, transactionUUID),
	}
}

// DecodeCallback parses the base64 JSON blob the gateway appends to the
// success redirect.
func DecodeCallback(encoded string) (*Callback, error) {
	if encoded == "" {
		return nil, errInvalidCallback
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// The gateway URL-encodes the blob; some clients hand it over with
		// the trailing padding stripped.
		raw, err = base64.RawStdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, errInvalidCallback
		}
	}
	var cb Callback
	if err := json.Unmarshal(raw, &cb); err != nil {
		return nil, errInvalidCallback
	}
	return &cb, nil
}
