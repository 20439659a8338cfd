package payments

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"tripdesk/internal/domain"
)

// Stripe implements the card-payment port on Stripe payment intents.
type Stripe struct{}

func New(apiKey string) *Stripe {
	stripe.Key = apiKey
	return &Stripe{}
}

func (s *Stripe) CreateIntent(ctx context.Context, amount int64, currency string) (domain.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return domain.PaymentIntent{}, err
	}
	return domain.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (s *Stripe) ConfirmIntent(ctx context.Context, id string) (domain.PaymentStatus, error) {
	pi, err := paymentintent.Get(id, &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return domain.PaymentStatus{}, err
	}
	st := domain.PaymentStatus{
		Status:          string(pi.Status),
		PaymentIntentID: pi.ID,
		Amount:          pi.Amount,
	}
	if pi.Currency != "" {
		st.Currency = string(pi.Currency)
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		st.Success = true
	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		st.RequiresAction = true
	}
	return st, nil
}
