package gateway

import (
	"context"

	"github.com/mirror-media/swiftpass-go/pkg/gateway/swiftpass"
)

// Provider is the interface each payment gateway has to implement
type Provider interface {
	CreateOrder(ctx context.Context, req *swiftpass.CreateOrderRequest) (swiftpass.Response, error)
	QueryOrder(ctx context.Context, req *swiftpass.QueryOrderRequest) (swiftpass.Response, error)
	Refund(ctx context.Context, req *swiftpass.RefundRequest) (swiftpass.Response, error)
	QueryRefund(ctx context.Context, req *swiftpass.QueryRefundRequest) (swiftpass.Response, error)
	CloseOrder(ctx context.Context, req *swiftpass.CloseOrderRequest) (swiftpass.Response, error)
	DownloadBill(ctx context.Context, req *swiftpass.DownloadBillRequest) (*swiftpass.Bill, error)
	ParseNotify(body []byte) (swiftpass.Response, error)
	Validate(op swiftpass.Operation, params swiftpass.Params) error
}

// NewSwiftPassProvider returns a provider from SwiftPass
func NewSwiftPassProvider(config swiftpass.Config, opts ...swiftpass.Option) (p Provider, err error) {
	client, err := swiftpass.NewClient(config, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}
