package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/edusekai/platform-api/internal/config"
	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/gateway/esewa"
	"github.com/edusekai/platform-api/internal/validation"
	"github.com/edusekai/platform-api/pkg/util"
)

type paymentFixture struct {
	svc      *PaymentService
	payments *fakePaymentRepo
	orgRepo  *fakeOrgRepo
	users    *fakeUserRepo
	roles    *fakeRoleRepo
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		payments: newFakePaymentRepo(),
		orgRepo:  newFakeOrgRepo(),
		users:    newFakeUserRepo(),
		roles:    newFakeRoleRepo(),
	}
	cfg := config.Config{
		Auth: config.AuthConfig{BcryptCost: 4},
		Esewa: config.EsewaConfig{
			GatewayURL:   "https://rc-epay.esewa.com.np/api/epay/main/v2/form",
			ProductCode:  "EPAYTEST",
			ClientSecret: "secret",
			SignupAmount: "1000",
		},
	}
	orgs := NewOrganizationService(cfg, OrganizationDependencies{
		OrgRepo:   f.orgRepo,
		UserRepo:  f.users,
		RoleRepo:  f.roles,
		Validator: validation.New(),
	})
	f.svc = NewPaymentService(cfg, PaymentDependencies{
		PaymentRepo: f.payments,
		Orgs:        orgs,
		Gateway:     esewa.NewClient(cfg.Esewa),
		Validator:   validation.New(),
	})
	return f
}

func (f *paymentFixture) pendingPayment() *domain.Payment {
	payment := &domain.Payment{
		TransactionUUID:  "tx-1234",
		Amount:           "1000",
		Status:           domain.PaymentStatusPending,
		OrganizationName: "Everest Academy",
		Subdomain:        "everest",
		Username:         "principal",
		Email:            "principal@everest.edu.np",
		Password:         "hashed",
	}
	f.payments.Create(context.Background(), payment) //nolint:errcheck
	return payment
}

func encodeCallback(t *testing.T, cb esewa.Callback) string {
	t.Helper()
	raw, err := json.Marshal(cb)
	if err != nil {
		t.Fatal(err)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestInitiateSignup(t *testing.T) {
	f := newPaymentFixture()
	form, err := f.svc.InitiateSignup(context.Background(), SignupInput{
		OrganizationName: "Everest Academy",
		Subdomain:        "everest",
		Username:         "principal",
		Email:            "principal@everest.edu.np",
		Password:         "longenough1",
	})
	if err != nil {
		t.Fatalf("InitiateSignup: %v", err)
	}
	if form.TransactionUUID == "" {
		t.Fatal("no transaction uuid issued")
	}
	if form.Fields.TotalAmount != "1000" || form.Fields.Signature == "" {
		t.Fatalf("form fields = %+v", form.Fields)
	}

	payment, err := f.payments.GetByTransactionUUID(context.Background(), form.TransactionUUID)
	if err != nil {
		t.Fatalf("pending payment not stored: %v", err)
	}
	if payment.Status != domain.PaymentStatusPending {
		t.Fatalf("payment status = %q, want PENDING", payment.Status)
	}
	if payment.Password == "longenough1" {
		t.Fatal("owner password stored in clear")
	}
}

func TestInitiateSignupRejectsTakenSubdomain(t *testing.T) {
	f := newPaymentFixture()
	f.orgRepo.Create(context.Background(), &domain.Organization{Name: "Existing", Subdomain: "everest"}) //nolint:errcheck

	_, err := f.svc.InitiateSignup(context.Background(), SignupInput{
		OrganizationName: "Everest Academy",
		Subdomain:        "everest",
		Username:         "principal",
		Email:            "principal@everest.edu.np",
		Password:         "longenough1",
	})
	var derr *util.DomainError
	if !errors.As(err, &derr) || derr.Code != "CONFLICT" {
		t.Fatalf("error = %v, want CONFLICT", err)
	}
}

func TestVerifySignupProvisionsTenant(t *testing.T) {
	f := newPaymentFixture()
	payment := f.pendingPayment()

	// eSewa formats large totals with thousands separators.
	encoded := encodeCallback(t, esewa.Callback{
		Status:          esewa.StatusComplete,
		TotalAmount:     "1,000",
		TransactionUUID: payment.TransactionUUID,
	})
	org, err := f.svc.VerifySignup(context.Background(), encoded)
	if err != nil {
		t.Fatalf("VerifySignup: %v", err)
	}
	if org.Subdomain != "everest" || !org.IsActive {
		t.Fatalf("provisioned org = %+v", org)
	}
	if payment.Status != domain.PaymentStatusCompleted {
		t.Fatalf("payment status = %q, want COMPLETED", payment.Status)
	}

	// The system roles and the owner account come with the tenant.
	seeds := domain.SystemRoleSeeds()
	if len(f.roles.roles) != len(seeds) {
		t.Fatalf("%d roles created, want %d", len(f.roles.roles), len(seeds))
	}
	owner, err := f.users.GetByUsername(context.Background(), "principal")
	if err != nil {
		t.Fatalf("owner account missing: %v", err)
	}
	slugs, _ := f.roles.SlugsForUser(context.Background(), testOrgID, owner.ID)
	if len(slugs) != 1 || slugs[0] != domain.RoleSlugOwner {
		t.Fatalf("owner role slugs = %v", slugs)
	}
}

func TestVerifySignupIdempotentReplay(t *testing.T) {
	f := newPaymentFixture()
	payment := f.pendingPayment()
	payment.Status = domain.PaymentStatusCompleted
	existing := &domain.Organization{Name: "Everest Academy", Subdomain: "everest"}
	f.orgRepo.Create(context.Background(), existing) //nolint:errcheck

	encoded := encodeCallback(t, esewa.Callback{
		Status:          esewa.StatusComplete,
		TotalAmount:     "1000",
		TransactionUUID: payment.TransactionUUID,
	})
	org, err := f.svc.VerifySignup(context.Background(), encoded)
	if err != nil {
		t.Fatalf("replayed VerifySignup: %v", err)
	}
	if org.ID != existing.ID {
		t.Fatalf("replay returned %+v, want the existing org", org)
	}
	if len(f.users.users) != 0 || len(f.roles.roles) != 0 {
		t.Fatal("replay provisioned a second tenant")
	}
	if len(f.payments.statuses) != 0 {
		t.Fatalf("replay touched payment status: %v", f.payments.statuses)
	}
}

func TestVerifySignupRejectsBadCallbacks(t *testing.T) {
	f := newPaymentFixture()

	t.Run("incomplete status", func(t *testing.T) {
		payment := f.pendingPayment()
		encoded := encodeCallback(t, esewa.Callback{
			Status:          "PENDING",
			TotalAmount:     "1000",
			TransactionUUID: payment.TransactionUUID,
		})
		if _, err := f.svc.VerifySignup(context.Background(), encoded); err == nil {
			t.Fatal("accepted a non-COMPLETE callback")
		}
		if payment.Status != domain.PaymentStatusFailed {
			t.Fatalf("payment status = %q, want FAILED", payment.Status)
		}
	})

	t.Run("amount mismatch", func(t *testing.T) {
		payment := f.pendingPayment()
		payment.TransactionUUID = "tx-5678"
		encoded := encodeCallback(t, esewa.Callback{
			Status:          esewa.StatusComplete,
			TotalAmount:     "500",
			TransactionUUID: payment.TransactionUUID,
		})
		if _, err := f.svc.VerifySignup(context.Background(), encoded); err == nil {
			t.Fatal("accepted a mismatched amount")
		}
		if payment.Status != domain.PaymentStatusFailed {
			t.Fatalf("payment status = %q, want FAILED", payment.Status)
		}
	})

	t.Run("unknown transaction", func(t *testing.T) {
		encoded := encodeCallback(t, esewa.Callback{
			Status:          esewa.StatusComplete,
			TotalAmount:     "1000",
			TransactionUUID: "tx-unknown",
		})
		_, err := f.svc.VerifySignup(context.Background(), encoded)
		var derr *util.DomainError
		if !errors.As(err, &derr) || derr.Code != "NOT_FOUND" {
			t.Fatalf("error = %v, want NOT_FOUND", err)
		}
	})

	t.Run("garbage payload", func(t *testing.T) {
		if _, err := f.svc.VerifySignup(context.Background(), "%%%"); err == nil {
			t.Fatal("accepted undecodable callback data")
		}
	})
}

func TestAmountsEqual(t *testing.T) {
	cases := []struct {
		received string
		expected string
		want     bool
	}{
		{"1000", "1000", true},
		{"1,000", "1000", true},
		{"10,00,000", "1000000", true},
		{"1000.0", "1000", false},
		{"500", "1000", false},
	}
	for _, tc := range cases {
		if got := amountsEqual(tc.received, tc.expected); got != tc.want {
			t.Errorf("amountsEqual(%q, %q) = %v, want %v", tc.received, tc.expected, got, tc.want)
		}
	}
}
