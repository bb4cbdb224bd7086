package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/mirror-media/swiftpass-go/pkg/gateway/swiftpass"
	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newRefundNo returns a 32 character refund number.
func newRefundNo() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func createCmd() *cobra.Command {
	req := &swiftpass.CreateOrderRequest{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a payment order",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			resp, err := client.CreateOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.Service, "service", "pay.weixin.jspay", "Payment service code")
	cmd.Flags().StringVar(&req.Body, "body", "", "Goods description")
	cmd.Flags().StringVar(&req.OutTradeNo, "out-trade-no", "", "Merchant order number")
	cmd.Flags().Int64Var(&req.TotalFee, "total-fee", 0, "Amount in cents")
	cmd.Flags().StringVar(&req.MchCreateIP, "client-ip", "127.0.0.1", "Payer IP")
	cmd.Flags().StringVar(&req.SubOpenID, "sub-openid", "", "Payer open id")
	cmd.Flags().StringVar(&req.Attach, "attach", "", "Data echoed back in the notification")

	return cmd
}

func queryCmd() *cobra.Command {
	req := &swiftpass.QueryOrderRequest{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query a payment order",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			resp, err := client.QueryOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.OutTradeNo, "out-trade-no", "", "Merchant order number")
	cmd.Flags().StringVar(&req.TransactionID, "transaction-id", "", "Gateway transaction id")

	return cmd
}

func refundCmd() *cobra.Command {
	req := &swiftpass.RefundRequest{}
	cmd := &cobra.Command{
		Use:   "refund",
		Short: "Refund a paid order (needs --pfx-file)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			if req.OutRefundNo == "" {
				req.OutRefundNo = newRefundNo()
			}
			resp, err := client.Refund(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.OutTradeNo, "out-trade-no", "", "Merchant order number")
	cmd.Flags().StringVar(&req.TransactionID, "transaction-id", "", "Gateway transaction id")
	cmd.Flags().StringVar(&req.OutRefundNo, "out-refund-no", "", "Merchant refund number (generated when empty)")
	cmd.Flags().Int64Var(&req.TotalFee, "total-fee", 0, "Order amount in cents")
	cmd.Flags().Int64Var(&req.RefundFee, "refund-fee", 0, "Refund amount in cents")

	return cmd
}

func queryRefundCmd() *cobra.Command {
	req := &swiftpass.QueryRefundRequest{}
	cmd := &cobra.Command{
		Use:   "query-refund",
		Short: "Query refunds of an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			resp, err := client.QueryRefund(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&req.OutTradeNo, "out-trade-no", "", "Merchant order number")
	cmd.Flags().StringVar(&req.TransactionID, "transaction-id", "", "Gateway transaction id")
	cmd.Flags().StringVar(&req.OutRefundNo, "out-refund-no", "", "Merchant refund number")
	cmd.Flags().StringVar(&req.RefundID, "refund-id", "", "Gateway refund id")

	return cmd
}

func closeCmd() *cobra.Command {
	req := &swiftpass.CloseOrderRequest{}
	cmd := &cobra.Command{
		Use:   "close [out-trade-no]",
		Short: "Close an unpaid order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			req.OutTradeNo = args[0]
			resp, err := client.CloseOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	return cmd
}

func billCmd() *cobra.Command {
	req := &swiftpass.DownloadBillRequest{}
	cmd := &cobra.Command{
		Use:   "bill [yyyymmdd]",
		Short: "Download the merchant bill of one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			req.BillDate = args[0]
			bill, err := client.DownloadBill(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), bill)
		},
	}

	cmd.Flags().StringVar(&req.BillType, "type", "ALL", "Bill type: ALL, SUCCESS, REFUND")

	return cmd
}
