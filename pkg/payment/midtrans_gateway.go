package payment

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type MidtransGateway struct {
	snapClient snap.Client
	coreClient coreapi.Client
}

var _ Gateway = &MidtransGateway{}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	g := &MidtransGateway{}
	g.snapClient.New(serverKey, env)
	g.coreClient.New(serverKey, env)
	return g
}

func (g *MidtransGateway) CreateIntent(ctx context.Context, intentId, identity, planName string, amount int64) (string, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  intentId,
			GrossAmt: amount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: identity,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    intentId,
				Price: amount,
				Qty:   1,
				Name:  planName,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := g.snapClient.CreateTransaction(snapReq)
	if midErr != nil {
		return "", fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}
	return snapResp.RedirectURL, nil
}

func (g *MidtransGateway) CheckStatus(ctx context.Context, intentId string) (Status, error) {
	statusResp, midErr := g.coreClient.CheckTransaction(intentId)
	if midErr != nil {
		return "", fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}

	switch statusResp.TransactionStatus {
	case "capture", "settlement":
		return StatusCompleted, nil
	case "deny":
		return StatusFailed, nil
	case "cancel", "expire":
		return StatusCancelled, nil
	default:
		return StatusPending, nil
	}
}
