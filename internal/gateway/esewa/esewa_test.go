package esewa

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/edusekai/platform-api/internal/config"
)

func testClient() *Client {
	return NewClient(config.EsewaConfig{
		GatewayURL:   "https://rc-epay.esewa.com.np/api/epay/main/v2/form",
		ProductCode:  "EPAYTEST",
		ClientSecret: "8gBm/:&EnhH.1/q",
		SignupAmount: "1000",
	})
}

func TestSign(t *testing.T) {
	c := testClient()
	got := c.Sign("1000", "tx-1234")

	mac := hmac.New(sha256.New, []byte("8gBm/:&EnhH.1/q"))
	mac.Write([]byte("total_amount=1000,transaction_uuid=tx-1234,product_code=EPAYTEST"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if got != want {
		t.Fatalf("Sign = %q, want %q", got, want)
	}
	if got != c.Sign("1000", "tx-1234") {
		t.Fatal("Sign is not deterministic for identical input")
	}
	if got == c.Sign("1000", "tx-5678") {
		t.Fatal("Sign ignored the transaction uuid")
	}
}

func TestBuildForm(t *testing.T) {
	c := testClient()
	form := c.BuildForm("1000", "tx-1234")

	if form.TotalAmount != "1000" || form.Amount != "1000" {
		t.Fatalf("form amounts = %q/%q, want 1000", form.Amount, form.TotalAmount)
	}
	if form.TaxAmount != "0" || form.ProductServiceCharge != "0" || form.ProductDeliveryCharge != "0" {
		t.Fatal("charge fields must default to 0")
	}
	if form.SignedFieldNames != SignedFieldNames {
		t.Fatalf("signed_field_names = %q, want %q", form.SignedFieldNames, SignedFieldNames)
	}
	if form.Signature != c.Sign("1000", "tx-1234") {
		t.Fatal("form signature does not cover the form values")
	}
}

func TestDecodeCallback(t *testing.T) {
	payload, err := json.Marshal(Callback{
		TransactionCode: "000ABC",
		Status:          StatusComplete,
		TotalAmount:     "1,000.0",
		TransactionUUID: "tx-1234",
		ProductCode:     "EPAYTEST",
	})
	if err != nil {
		t.Fatal(err)
	}

	padded := base64.StdEncoding.EncodeToString(payload)
	unpadded := strings.TrimRight(padded, "=")

	for _, encoded := range []string{padded, unpadded} {
		cb, err := DecodeCallback(encoded)
		if err != nil {
			t.Fatalf("DecodeCallback(%q): %v", encoded, err)
		}
		if cb.Status != StatusComplete || cb.TransactionUUID != "tx-1234" {
			t.Fatalf("decoded %+v", cb)
		}
	}

	for _, bad := range []string{"", "%%%not-base64%%%", base64.StdEncoding.EncodeToString([]byte("not json"))} {
		if _, err := DecodeCallback(bad); err == nil {
			t.Fatalf("DecodeCallback(%q) accepted invalid input", bad)
		}
	}
}
