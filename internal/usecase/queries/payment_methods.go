package queries

import (
	"context"

	"fractional-market/internal/domain/payment"
)

type PaymentMethodQueries interface {
	List(ctx context.Context) *PaymentMethodsView
}

type ProviderCatalog interface {
	Available() []payment.Provider
	Enabled() []payment.Provider
}

type paymentMethodQueriesImpl struct {
	catalog ProviderCatalog
}

func NewPaymentMethodQueries(catalog ProviderCatalog) PaymentMethodQueries {
	return &paymentMethodQueriesImpl{catalog: catalog}
}

func (q *paymentMethodQueriesImpl) List(_ context.Context) *PaymentMethodsView {
	return &PaymentMethodsView{
		AvailableMethods: providerNames(q.catalog.Available()),
		EnabledMethods:   providerNames(q.catalog.Enabled()),
	}
}

func providerNames(providers []payment.Provider) []string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.String()
	}
	return names
}
