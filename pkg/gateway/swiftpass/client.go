package swiftpass

import (
	"bytes"
	"context"
)

// Operation describes one gateway call: its service code, the fields it
// requires and the account defaults it takes.
type Operation struct {
	Name string
	// Service is written into every request; empty means the caller provides it.
	Service  string
	Required []string
	Defaults []DefaultKey
	// Expect lists response fields whose absence is a KindMissingParam error.
	Expect []string
	// Secure sends the request over the client certificate connection.
	Secure bool
	// Bill targets the bill download endpoint.
	Bill bool
}

var (
	OpCreateOrder = Operation{
		Name:     "create order",
		Required: []string{"body", "out_trade_no", "total_fee", "mch_create_ip", "mch_id", "service"},
		Defaults: []DefaultKey{DefaultSubAppID, DefaultMerchantID, DefaultSubMerchantID, DefaultNonce, DefaultNotifyURL},
		Expect:   []string{"pay_info"},
	}
	OpQueryOrder = Operation{
		Name:     "query order",
		Service:  "unified.trade.query",
		Required: []string{"transaction_id|out_trade_no"},
		Defaults: []DefaultKey{DefaultMerchantID, DefaultSubMerchantID, DefaultNonce},
	}
	OpRefund = Operation{
		Name:     "refund",
		Service:  "unified.trade.refund",
		Required: []string{"transaction_id|out_trade_no", "out_refund_no", "total_fee", "refund_fee"},
		Defaults: []DefaultKey{DefaultMerchantID, DefaultSubMerchantID, DefaultNonce, DefaultOperatorID},
		Secure:   true,
	}
	OpQueryRefund = Operation{
		Name:     "query refund",
		Service:  "unified.trade.refundquery",
		Required: []string{"transaction_id|out_trade_no|out_refund_no|refund_id"},
		Defaults: []DefaultKey{DefaultMerchantID, DefaultSubMerchantID, DefaultNonce},
	}
	OpCloseOrder = Operation{
		Name:     "close order",
		Service:  "unified.trade.close",
		Required: []string{"out_trade_no"},
		Defaults: []DefaultKey{DefaultMerchantID, DefaultSubMerchantID, DefaultNonce},
	}
	OpDownloadBill = Operation{
		Name:     "download bill",
		Service:  "pay.bill.merchant",
		Required: []string{"bill_date", "mch_id"},
		Defaults: []DefaultKey{DefaultMerchantID, DefaultNonce},
		Bill:     true,
	}
)

// Client runs gateway operations for one merchant account. It holds no
// mutable state and is safe for concurrent use.
type Client struct {
	account   *Account
	transport Transport
}

type Option func(*Client)

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

func NewClient(config Config, opts ...Option) (*Client, error) {
	account, err := config.Account()
	if err != nil {
		return nil, err
	}
	c := &Client{account: account}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		t, err := NewHTTPTransport(account)
		if err != nil {
			return nil, err
		}
		c.transport = t
	}
	return c, nil
}

func (c *Client) Account() *Account { return c.account }

func (c *Client) expand(op Operation, params Params) (Params, error) {
	fields, err := c.account.Expand(params, op.Defaults...)
	if err != nil {
		return nil, err
	}
	if op.Service != "" {
		fields["service"] = op.Service
	}
	if err := Validate(fields, op.Required...); err != nil {
		return nil, err
	}
	return fields, nil
}

// Validate reports whether params, with the account defaults applied, can
// be sent as op. Nothing is signed or sent.
func (c *Client) Validate(op Operation, params Params) error {
	fields, err := c.expand(op, params)
	if err != nil {
		return err
	}
	_, err = Canonical(fields)
	return err
}

// Prepare expands, validates and signs params for op and returns the encoded body.
// Nothing is sent.
func (c *Client) Prepare(op Operation, params Params) ([]byte, error) {
	fields, err := c.expand(op, params)
	if err != nil {
		return nil, err
	}

	sign, err := Sign(fields, c.account.key, c.account.algorithm)
	if err != nil {
		return nil, err
	}
	fields[SignKey] = sign
	return EncodeXML(fields)
}

func (c *Client) send(ctx context.Context, op Operation, params Params) ([]byte, error) {
	body, err := c.Prepare(op, params)
	if err != nil {
		return nil, err
	}
	url := c.account.gatewayURL
	if op.Bill {
		url = c.account.billURL
	}
	return c.transport.Post(ctx, url, body, op.Secure)
}

// Do runs op with untyped params. On gateway and missing field errors the
// decoded response is returned along with the error.
func (c *Client) Do(ctx context.Context, op Operation, params Params) (Response, error) {
	raw, err := c.send(ctx, op, params)
	if err != nil {
		return nil, err
	}
	resp, err := DecodeXML(raw)
	if err != nil {
		return nil, err
	}
	if err := c.check(resp, raw, op.Expect...); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Client) check(resp Response, raw []byte, expect ...string) error {
	if _, signed := resp[SignKey]; signed {
		if err := Verify(Params(resp), c.account.key, c.account.algorithm); err != nil {
			if e, ok := err.(*Error); ok {
				e.Raw = raw
			}
			return err
		}
	}
	if status := resp.String("status"); status != "" && status != "0" {
		return &Error{Kind: KindGateway, Message: resp.String("message"), Code: status, Raw: raw}
	}
	if result := resp.String("result_code"); result != "" && result != "0" {
		code := resp.String("err_code")
		if code == "" {
			code = result
		}
		return &Error{Kind: KindGateway, Message: resp.String("err_msg"), Code: code, Raw: raw}
	}
	for _, key := range expect {
		if !truthy(resp[key]) {
			return &Error{Kind: KindMissingParam, Message: "response has no " + key, Raw: raw}
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op Operation, req interface{}) (Response, error) {
	params, err := ToParams(req)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, op, params)
}

func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderRequest) (Response, error) {
	if req == nil {
		req = &CreateOrderRequest{}
	}
	return c.do(ctx, OpCreateOrder, req)
}

func (c *Client) QueryOrder(ctx context.Context, req *QueryOrderRequest) (Response, error) {
	if req == nil {
		req = &QueryOrderRequest{}
	}
	return c.do(ctx, OpQueryOrder, req)
}

// Refund is sent over the client certificate connection.
func (c *Client) Refund(ctx context.Context, req *RefundRequest) (Response, error) {
	if req == nil {
		req = &RefundRequest{}
	}
	return c.do(ctx, OpRefund, req)
}

func (c *Client) QueryRefund(ctx context.Context, req *QueryRefundRequest) (Response, error) {
	if req == nil {
		req = &QueryRefundRequest{}
	}
	return c.do(ctx, OpQueryRefund, req)
}

func (c *Client) CloseOrder(ctx context.Context, req *CloseOrderRequest) (Response, error) {
	if req == nil {
		req = &CloseOrderRequest{}
	}
	return c.do(ctx, OpCloseOrder, req)
}

// DownloadBill fetches the CSV bill. The gateway answers with an XML
// envelope instead when it rejects the request.
func (c *Client) DownloadBill(ctx context.Context, req *DownloadBillRequest) (*Bill, error) {
	if req == nil {
		req = &DownloadBillRequest{}
	}
	params, err := ToParams(req)
	if err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, OpDownloadBill, params)
	if err != nil {
		return nil, err
	}

	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("<")) {
		resp, err := DecodeXML(raw)
		if err != nil {
			return nil, err
		}
		if err := c.check(resp, raw); err != nil {
			return nil, err
		}
		return nil, &Error{Kind: KindReportParse, Message: "expected a bill, got an xml envelope", Raw: raw}
	}
	return DecodeBill(raw)
}

// ParseNotify decodes and verifies a payment notification. Unlike call
// responses, a notification must be signed.
func (c *Client) ParseNotify(body []byte) (Response, error) {
	resp, err := DecodeXML(body)
	if err != nil {
		return nil, err
	}
	if _, signed := resp[SignKey]; !signed {
		return resp, &Error{Kind: KindSignature, Message: "notification is not signed", Raw: body}
	}
	if err := c.check(resp, body); err != nil {
		return resp, err
	}
	return resp, nil
}
