package payment

import (
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

const maxNotifyBody = 1 << 20

// Notify receives the gateway payment notification. The gateway retries
// until it reads "success".
func Notify(w http.ResponseWriter, r *http.Request) {

	provider, err := newProvider(r.Context())
	if err != nil {
		logrus.Errorf("load config encounter error:%+v", err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxNotifyBody))
	if err != nil {
		logrus.Errorf("read notification error:%+v", err)
		io.WriteString(w, "fail")
		return
	}

	resp, err := provider.ParseNotify(body)
	if err != nil {
		logrus.WithField("body", string(body)).Errorf("notification rejected:%+v", err)
		io.WriteString(w, "fail")
		return
	}

	logrus.WithFields(logrus.Fields{
		"out_trade_no":   resp.String("out_trade_no"),
		"transaction_id": resp.String("transaction_id"),
		"pay_result":     resp.String("pay_result"),
	}).Info("payment notification received")
	io.WriteString(w, "success")
}
