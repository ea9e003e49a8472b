package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	paymentsapp "github.com/johithjpr-lab/ecommerce-platform/internal/domains/payments/application"
	"github.com/johithjpr-lab/ecommerce-platform/internal/shared/auth"
	apierrors "github.com/johithjpr-lab/ecommerce-platform/internal/shared/errors"
)

// PaymentsAPI exposes the wallet surface and the payment-method catalog.
type PaymentsAPI struct {
	service   *paymentsapp.Service
	responder *apierrors.ChainedResponder
}

func NewPaymentsAPI(service *paymentsapp.Service, responder *apierrors.ChainedResponder) *PaymentsAPI {
	return &PaymentsAPI{service: service, responder: responder}
}

type walletTransactionResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Description string    `json:"description,omitempty"`
	OrderID     string    `json:"orderId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type walletResponse struct {
	ID           string                      `json:"id"`
	Balance      string                      `json:"balance"`
	Currency     string                      `json:"currency"`
	Transactions []walletTransactionResponse `json:"transactions"`
}

func toWalletResponse(projection *paymentsapp.WalletProjection) walletResponse {
	transactions := make([]walletTransactionResponse, 0, len(projection.Transactions))
	for _, tx := range projection.Transactions {
		entry := walletTransactionResponse{
			ID:          tx.ID.String(),
			Type:        string(tx.Type),
			Amount:      tx.Amount.StringFixed(2),
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		}
		if tx.OrderID != nil {
			entry.OrderID = tx.OrderID.String()
		}
		transactions = append(transactions, entry)
	}
	return walletResponse{
		ID:           projection.Wallet.ID.String(),
		Balance:      projection.Wallet.Balance.StringFixed(2),
		Currency:     projection.Wallet.Currency,
		Transactions: transactions,
	}
}

// GetWallet handles GET /payments/wallet, creating the wallet on first use.
func (a *PaymentsAPI) GetWallet(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	projection, err := a.service.GetWallet(c.Request.Context(), identity.CustomerID)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWalletResponse(projection))
}

type addFundsRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AddFunds handles POST /payments/wallet/add.
func (a *PaymentsAPI) AddFunds(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	var req addFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	projection, err := a.service.AddFunds(c.Request.Context(), identity.CustomerID, req.Amount)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWalletResponse(projection))
}

// ListMethods handles GET /payments/methods. Public.
func (a *PaymentsAPI) ListMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"methods": paymentsapp.Methods()})
}

type createIntentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

// CreateIntent handles POST /payments/stripe/create-intent for the two-phase
// card flow.
func (a *PaymentsAPI) CreateIntent(c *gin.Context) {
	identity, ok := auth.FromContext(c)
	if !ok {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	outcome, err := a.service.CreateIntent(c.Request.Context(), identity.CustomerID, req.Amount, req.Currency)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"clientSecret":   outcome.ClientSecret,
		"transactionId":  outcome.TransactionID,
		"requiresAction": outcome.RequiresAction,
	})
}
