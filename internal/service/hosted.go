package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/migishaone/xenovaPay/internal/domain"
	"github.com/migishaone/xenovaPay/internal/metrics"
	"github.com/migishaone/xenovaPay/internal/pawapay"
)

// HostedPaymentResult is the handle for a widget session: the local record
// plus the hosted page the browser should be sent to.
type HostedPaymentResult struct {
	Transaction *domain.Transaction
	RedirectURL string
}

// CreateHostedPayment creates a PENDING record with provider and country
// left for the hosted page to resolve, then opens a widget session whose
// return URL points back at this relay.
func (s *PaymentService) CreateHostedPayment(ctx context.Context, cmd HostedPaymentCommand) (*HostedPaymentResult, error) {
	amount, err := validateCommand(s.validate, cmd, cmd.Amount, cmd.Description)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	tx, err := domain.NewTransaction(id, domain.TypeDeposit, amount, cmd.Currency, "", "", cmd.Description)
	if err != nil {
		return nil, NewInvalidInputError(err)
	}
	if cmd.Country != "" {
		tx.Country = cmd.Country
	}
	tx, err = s.txStore.Create(ctx, tx)
	if err != nil {
		return nil, NewInternalError(err)
	}

	metrics.TransactionsInitiated.WithLabelValues(string(domain.TypeDeposit)).Inc()

	returnURL := fmt.Sprintf("%s/payment-return?transactionId=%s", s.cfg.Relay.PublicBaseURL, url.QueryEscape(id))
	session, err := s.gateway.CreateWidgetSession(ctx, pawapay.WidgetSessionRequest{
		DepositID:            id,
		Amount:               amount,
		ReturnURL:            returnURL,
		Country:              cmd.Country,
		StatementDescription: cmd.Description,
	})
	if err != nil {
		return nil, s.failInitiation(ctx, tx, err)
	}

	accepted := domain.StatusAccepted
	merged, err := s.txStore.Update(ctx, id, domain.TransactionUpdate{
		Status:          &accepted,
		GatewayResponse: session.Raw,
	})
	if err != nil {
		return nil, NewInternalError(err)
	}

	s.logger.Info("hosted payment session created", "transaction_id", id)

	return &HostedPaymentResult{Transaction: merged, RedirectURL: session.RedirectURL}, nil
}

// ReturnOutcome is where the browser ends up after the hosted flow.
type ReturnOutcome string

const (
	ReturnSuccess ReturnOutcome = "success"
	ReturnFailure ReturnOutcome = "failure"
)

// HandleReturn runs one more status check when the browser comes back from
// the hosted page. A reachable gateway decides the outcome normally. An
// unreachable gateway is treated as a false negative when the sandbox
// toggle is on: the user already walked the hosted flow, so the record is
// marked COMPLETED with a synthetic note in the response snapshot. With the
// toggle off nothing is fabricated and the user is routed to the failure
// page.
func (s *PaymentService) HandleReturn(ctx context.Context, id string) (ReturnOutcome, *domain.Transaction, error) {
	tx, err := s.txStore.Get(ctx, id)
	if err != nil {
		return ReturnFailure, nil, NewNotFoundError(err)
	}

	result, err := s.queryStatus(ctx, tx.Type, id)
	if err != nil {
		metrics.GatewayErrors.Inc()
		if !s.cfg.SandboxAssumeCompleted() {
			s.logger.Warn("return status check failed", "transaction_id", id, "error", err)
			return ReturnFailure, tx, nil
		}

		completed := domain.StatusCompleted
		note, _ := json.Marshal(map[string]string{
			"note":  "status check failed after hosted flow; assumed COMPLETED",
			"error": err.Error(),
		})
		merged, uerr := s.txStore.Update(ctx, id, domain.TransactionUpdate{
			Status:          &completed,
			GatewayResponse: note,
		})
		if uerr != nil {
			return ReturnFailure, tx, NewInternalError(uerr)
		}

		s.logger.Warn("assumed completion after unreachable gateway",
			"transaction_id", id,
			"error", err,
		)
		return ReturnSuccess, merged, nil
	}

	merged, err := s.reconcile(ctx, tx, result)
	if err != nil {
		return ReturnFailure, tx, err
	}

	if merged.Status == domain.StatusCompleted {
		return ReturnSuccess, merged, nil
	}
	return ReturnFailure, merged, nil
}
