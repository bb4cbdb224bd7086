package swiftpass

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// CreateOrderRequest places a payment order. Service picks the payment
// product, e.g. pay.weixin.jspay.
type CreateOrderRequest struct {
	Service     string `mapstructure:"service,omitempty" json:"service,omitempty"`
	Body        string `mapstructure:"body,omitempty" json:"body,omitempty"`
	OutTradeNo  string `mapstructure:"out_trade_no,omitempty" json:"out_trade_no,omitempty"`
	TotalFee    int64  `mapstructure:"total_fee,omitempty" json:"total_fee,omitempty"`
	MchCreateIP string `mapstructure:"mch_create_ip,omitempty" json:"mch_create_ip,omitempty"`
	SubOpenID   string `mapstructure:"sub_openid,omitempty" json:"sub_openid,omitempty"`
	SubAppID    string `mapstructure:"sub_appid,omitempty" json:"sub_appid,omitempty"`
	IsRaw       string `mapstructure:"is_raw,omitempty" json:"is_raw,omitempty"`
	Attach      string `mapstructure:"attach,omitempty" json:"attach,omitempty"`
	DeviceInfo  string `mapstructure:"device_info,omitempty" json:"device_info,omitempty"`
	GoodsTag    string `mapstructure:"goods_tag,omitempty" json:"goods_tag,omitempty"`
	TimeStart   string `mapstructure:"time_start,omitempty" json:"time_start,omitempty"`
	TimeExpire  string `mapstructure:"time_expire,omitempty" json:"time_expire,omitempty"`
	NotifyURL   string `mapstructure:"notify_url,omitempty" json:"notify_url,omitempty"`
	CallbackURL string `mapstructure:"callback_url,omitempty" json:"callback_url,omitempty"`
	LimitCredit string `mapstructure:"limit_credit_pay,omitempty" json:"limit_credit_pay,omitempty"`
}

type QueryOrderRequest struct {
	OutTradeNo    string `mapstructure:"out_trade_no,omitempty" json:"out_trade_no,omitempty"`
	TransactionID string `mapstructure:"transaction_id,omitempty" json:"transaction_id,omitempty"`
}

// RefundRequest moves funds back to the payer and needs the client certificate.
type RefundRequest struct {
	OutTradeNo    string `mapstructure:"out_trade_no,omitempty" json:"out_trade_no,omitempty"`
	TransactionID string `mapstructure:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	OutRefundNo   string `mapstructure:"out_refund_no,omitempty" json:"out_refund_no,omitempty"`
	TotalFee      int64  `mapstructure:"total_fee,omitempty" json:"total_fee,omitempty"`
	RefundFee     int64  `mapstructure:"refund_fee,omitempty" json:"refund_fee,omitempty"`
	OpUserID      string `mapstructure:"op_user_id,omitempty" json:"op_user_id,omitempty"`
	RefundChannel string `mapstructure:"refund_channel,omitempty" json:"refund_channel,omitempty"`
}

type QueryRefundRequest struct {
	OutTradeNo    string `mapstructure:"out_trade_no,omitempty" json:"out_trade_no,omitempty"`
	TransactionID string `mapstructure:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	OutRefundNo   string `mapstructure:"out_refund_no,omitempty" json:"out_refund_no,omitempty"`
	RefundID      string `mapstructure:"refund_id,omitempty" json:"refund_id,omitempty"`
}

type CloseOrderRequest struct {
	OutTradeNo string `mapstructure:"out_trade_no,omitempty" json:"out_trade_no,omitempty"`
}

// DownloadBillRequest fetches the merchant bill of one day (yyyyMMdd).
type DownloadBillRequest struct {
	BillDate string `mapstructure:"bill_date,omitempty" json:"bill_date,omitempty"`
	BillType string `mapstructure:"bill_type,omitempty" json:"bill_type,omitempty"`
}

// ToParams converts a typed request into wire fields, leaving out zero values.
func ToParams(req interface{}) (Params, error) {
	out := map[string]interface{}{}
	if err := mapstructure.Decode(req, &out); err != nil {
		return nil, &Error{Kind: KindValidation, Message: "convert request", Err: errors.WithStack(err)}
	}
	return Params(out), nil
}
