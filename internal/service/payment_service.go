package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/edusekai/platform-api/internal/config"
	"github.com/edusekai/platform-api/internal/domain"
	"github.com/edusekai/platform-api/internal/events"
	"github.com/edusekai/platform-api/internal/gateway/esewa"
	"github.com/edusekai/platform-api/internal/repository"
	"github.com/edusekai/platform-api/internal/validation"
	"github.com/edusekai/platform-api/pkg/util"
)

// SignupInput is the public registration payload collected before payment.
type SignupInput struct {
	OrganizationName string `json:"organization_name" validate:"required,max=150"`
	Subdomain        string `json:"subdomain" validate:"required,min=2,max=63"`
	Username         string `json:"username" validate:"required,min=3,max=50"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"max=20"`
	Password         string `json:"password" validate:"required,min=8"`
}

// SignupForm is everything the browser needs to post the payment.
type SignupForm struct {
	GatewayURL      string           `json:"gateway_url"`
	TransactionUUID string           `json:"transaction_uuid"`
	Fields          esewa.FormFields `json:"fields"`
}

// PaymentService runs the paid signup flow: a signed gateway form on
// initiation, then verification and tenant provisioning on the callback.
type PaymentService struct {
	payments   repository.PaymentRepository
	orgs       *OrganizationService
	gateway    *esewa.Client
	validator  *validation.Validator
	dispatcher events.Dispatcher
	amount     string
}

// PaymentDependencies bundles collaborators for the payment service.
type PaymentDependencies struct {
	PaymentRepo repository.PaymentRepository
	Orgs        *OrganizationService
	Gateway     *esewa.Client
	Validator   *validation.Validator
	Dispatcher  events.Dispatcher
}

// NewPaymentService builds the service.
func NewPaymentService(cfg config.Config, deps PaymentDependencies) *PaymentService {
	return &PaymentService{
		payments:   deps.PaymentRepo,
		orgs:       deps.Orgs,
		gateway:    deps.Gateway,
		validator:  deps.Validator,
		dispatcher: deps.Dispatcher,
		amount:     cfg.Esewa.SignupAmount,
	}
}

// InitiateSignup validates the registration, reserves nothing, and returns
// the signed gateway form. The registration data rides on the pending
// payment row until the gateway confirms.
func (s *PaymentService) InitiateSignup(ctx context.Context, input SignupInput) (*SignupForm, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	if err := s.orgs.CheckAvailability(ctx, input.Subdomain, input.Username); err != nil {
		return nil, err
	}

	passwordHash, err := s.orgs.HashOwnerPassword(input.Password)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		TransactionUUID:  uuid.NewString(),
		Amount:           s.amount,
		Status:           domain.PaymentStatusPending,
		OrganizationName: input.OrganizationName,
		Subdomain:        input.Subdomain,
		Username:         input.Username,
		Email:            input.Email,
		Phone:            input.Phone,
		Password:         passwordHash,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	return &SignupForm{
		GatewayURL:      s.gateway.GatewayURL(),
		TransactionUUID: payment.TransactionUUID,
		Fields:          s.gateway.BuildForm(s.amount, payment.TransactionUUID),
	}, nil
}

// VerifySignup decodes the gateway callback, confirms the payment and
// provisions the tenant. Replayed callbacks for an already completed
// payment return the existing organization without side effects.
func (s *PaymentService) VerifySignup(ctx context.Context, encodedData string) (*domain.Organization, error) {
	callback, err := esewa.DecodeCallback(encodedData)
	if err != nil {
		return nil, util.NewValidationError("unreadable payment callback", nil)
	}

	payment, err := s.payments.GetByTransactionUUID(ctx, callback.TransactionUUID)
	if repository.IsNotFound(err) {
		return nil, util.NewNotFound("payment", map[string]any{"transaction_uuid": callback.TransactionUUID})
	}
	if err != nil {
		return nil, err
	}

	if payment.Status == domain.PaymentStatusCompleted {
		org, err := s.orgs.orgs.GetBySubdomain(ctx, payment.Subdomain)
		if err != nil {
			return nil, err
		}
		return org, nil
	}

	if callback.Status != esewa.StatusComplete {
		s.payments.SetStatus(ctx, payment.ID, domain.PaymentStatusFailed) //nolint:errcheck
		return nil, util.NewValidationError("payment not completed", map[string]any{"status": callback.Status})
	}
	if !amountsEqual(callback.TotalAmount, payment.Amount) {
		s.payments.SetStatus(ctx, payment.ID, domain.PaymentStatusFailed) //nolint:errcheck
		return nil, util.NewValidationError("payment amount mismatch", map[string]any{
			"expected": payment.Amount,
			"received": callback.TotalAmount,
		})
	}

	org := &domain.Organization{
		Name:      payment.OrganizationName,
		Subdomain: payment.Subdomain,
		Phone:     payment.Phone,
		Email:     payment.Email,
		IsActive:  true,
	}
	owner := OwnerSeed{
		Username:     payment.Username,
		Email:        payment.Email,
		PasswordHash: payment.Password,
	}
	if _, err := s.orgs.Provision(ctx, org, owner); err != nil {
		return nil, err
	}
	if err := s.payments.SetStatus(ctx, payment.ID, domain.PaymentStatusCompleted); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.Event{ //nolint:errcheck
			ID:             uuid.NewString(),
			Type:           events.EventPaymentCompleted,
			OrganizationID: org.ID,
			Timestamp:      time.Now().UTC(),
			Payload: events.PaymentCompletedPayload{
				TransactionUUID: payment.TransactionUUID,
				Amount:          payment.Amount,
				Subdomain:       payment.Subdomain,
			},
		})
	}
	return org, nil
}

// amountsEqual compares gateway amount strings, tolerating the thousands
// separators eSewa inserts into large totals.
func amountsEqual(received, expected string) bool {
	return stripSeparators(received) == stripSeparators(expected)
}

func stripSeparators(amount string) string {
	out := make([]byte, 0, len(amount))
	for i := 0; i < len(amount); i++ {
		if amount[i] == ',' {
			continue
		}
		out = append(out, amount[i])
	}
	return string(out)
}
