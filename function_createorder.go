package payment

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/mirror-media/swiftpass-go/pkg/gateway/swiftpass"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CreateOrder places a payment order from a JSON payload and answers with
// the decoded gateway response.
func CreateOrder(w http.ResponseWriter, r *http.Request) {

	provider, err := newProvider(r.Context())
	if err != nil {
		logrus.Errorf("load config encounter error:%+v", err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	var payload swiftpass.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		err = errors.Wrap(err, "decoding payload error")
		logrus.Error(err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.MchCreateIP == "" {
		payload.MchCreateIP = clientIP(r)
	}

	resp, err := provider.CreateOrder(r.Context(), &payload)
	if err != nil {
		logrus.WithField("out_trade_no", payload.OutTradeNo).Errorf("order creation error:%+v", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		logrus.Errorf("json encode resp(%+v) error:%+v", resp, err)
		return
	}
}

func statusFor(err error) int {
	switch {
	case swiftpass.IsKind(err, swiftpass.KindValidation):
		return http.StatusBadRequest
	case swiftpass.IsKind(err, swiftpass.KindGateway),
		swiftpass.IsKind(err, swiftpass.KindMissingParam),
		swiftpass.IsKind(err, swiftpass.KindSignature),
		swiftpass.IsKind(err, swiftpass.KindXMLParse),
		swiftpass.IsKind(err, swiftpass.KindTransport):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
