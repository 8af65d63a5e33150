package checkout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/dependency/mocks"
	"github.com/jekabolt/storefront-ledger/internal/dto"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func newTestService(t *testing.T, txs *memTransactions, provider *stubProvider, mailer *mocks.Mailer) *Service {
	t.Helper()
	if mailer == nil {
		mailer = mocks.NewMailer(t)
		mailer.On("SendOrderConfirmation", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	}
	s, err := New(nil, newTestRepo(t, txs), provider, mailer)
	require.NoError(t, err)
	return s
}

func verifySuccess(calls *atomic.Int32) *stubProvider {
	return &stubProvider{verify: func(ctx context.Context, tx *entity.Transaction) (*entity.ProviderPayment, error) {
		calls.Add(1)
		return successFor(tx.Reference), nil
	}}
}

func TestConfirmOrderSequentialCreatesOneOrder(t *testing.T) {
	txs := newMemTransactions(pendingTx("tx_1"))
	var calls atomic.Int32
	s := newTestService(t, txs, verifySuccess(&calls), nil)

	first, err := s.ConfirmOrder(context.Background(), "tx_1")
	require.NoError(t, err)
	assert.Equal(t, msgOrderProcessed, first.Message)
	assert.Equal(t, "txid_tx_1", first.TransactionID)

	second, err := s.ConfirmOrder(context.Background(), "tx_1")
	require.NoError(t, err)
	assert.Equal(t, msgConfirmedViaWebhook, second.Message)
	assert.Equal(t, first.OrderID, second.OrderID)

	assert.Equal(t, 1, txs.orderCount())
	assert.Equal(t, int32(1), calls.Load(), "completed transactions are not verified again")
	assert.Equal(t, entity.TransactionSucceeded, txs.status("tx_1"))
}

// Both confirmations read the transaction as pending before either writes.
func TestConfirmOrderInterleavedCreatesOneOrder(t *testing.T) {
	for _, tc := range []struct {
		name      string
		instances int
	}{
		{name: "one process", instances: 1},
		{name: "two processes sharing the store", instances: 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			txs := newMemTransactions(pendingTx("tx_1"))
			var barrier sync.WaitGroup
			barrier.Add(2)
			provider := &stubProvider{verify: func(ctx context.Context, tx *entity.Transaction) (*entity.ProviderPayment, error) {
				assert.Equal(t, entity.TransactionPending, tx.Status)
				barrier.Done()
				barrier.Wait()
				return successFor(tx.Reference), nil
			}}

			services := []*Service{newTestService(t, txs, provider, nil)}
			if tc.instances == 2 {
				services = append(services, newTestService(t, txs, provider, nil))
			}

			var wg sync.WaitGroup
			results := make([]*dto.ConfirmOrderResponse, 2)
			errs := make([]error, 2)
			for i := 0; i < 2; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], errs[i] = services[i%len(services)].ConfirmOrder(context.Background(), "tx_1")
				}(i)
			}
			wg.Wait()

			require.NoError(t, errs[0])
			require.NoError(t, errs[1])
			assert.Equal(t, results[0].OrderID, results[1].OrderID)
			assert.ElementsMatch(t,
				[]string{msgOrderProcessed, msgConfirmedViaWebhook},
				[]string{results[0].Message, results[1].Message},
			)
			assert.Equal(t, 1, txs.orderCount())
		})
	}
}

func TestWebhookThenConfirm(t *testing.T) {
	txs := newMemTransactions(pendingTx("tx_1"))
	var calls atomic.Int32
	s := newTestService(t, txs, verifySuccess(&calls), nil)

	comp, err := s.HandleSuccess(context.Background(), successFor("tx_1"))
	require.NoError(t, err)
	assert.True(t, comp.Created)

	resp, err := s.ConfirmOrder(context.Background(), "tx_1")
	require.NoError(t, err)
	assert.Equal(t, comp.OrderID, resp.OrderID)
	assert.Equal(t, msgConfirmedViaWebhook, resp.Message)
	assert.Zero(t, calls.Load())
	assert.Equal(t, 1, txs.orderCount())

	again, err := s.HandleSuccess(context.Background(), successFor("tx_1"))
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, comp.OrderID, again.OrderID)
	assert.Equal(t, 1, txs.orderCount())
}

func TestConfirmOrderErrors(t *testing.T) {
	failedTx := pendingTx("tx_failed")
	failedTx.Status = entity.TransactionFailed

	verifyErr := errors.New("paystack down")
	provider := &stubProvider{verify: func(ctx context.Context, tx *entity.Transaction) (*entity.ProviderPayment, error) {
		switch tx.Reference {
		case "tx_abandoned":
			return &entity.ProviderPayment{Reference: tx.Reference, Status: entity.ProviderPaymentAbandoned}, nil
		case "tx_down":
			return nil, verifyErr
		}
		return successFor(tx.Reference), nil
	}}
	txs := newMemTransactions(pendingTx("tx_abandoned"), pendingTx("tx_down"), failedTx)
	s := newTestService(t, txs, provider, nil)

	_, err := s.ConfirmOrder(context.Background(), "")
	assert.Equal(t, codes.InvalidArgument, gerr.Code(err))

	_, err = s.ConfirmOrder(context.Background(), "tx_unknown")
	assert.ErrorIs(t, err, gerr.TransactionNotFound)

	_, err = s.ConfirmOrder(context.Background(), "tx_abandoned")
	assert.ErrorIs(t, err, gerr.TransactionNotSuccesful)
	assert.Equal(t, entity.TransactionPending, txs.status("tx_abandoned"))

	_, err = s.ConfirmOrder(context.Background(), "tx_down")
	assert.ErrorIs(t, err, verifyErr)
	assert.Equal(t, entity.TransactionPending, txs.status("tx_down"))

	_, err = s.ConfirmOrder(context.Background(), "tx_failed")
	assert.ErrorIs(t, err, gerr.TransactionFailed)

	assert.Zero(t, txs.orderCount())
}

func TestConfirmationEmail(t *testing.T) {
	t.Run("sent once for a new order", func(t *testing.T) {
		txs := newMemTransactions(pendingTx("tx_1"))
		mailer := mocks.NewMailer(t)
		mailer.On("SendOrderConfirmation", mock.Anything, "ada@example.com", mock.MatchedBy(func(oc *dto.OrderConfirmed) bool {
			return oc.OrderNumber == "ORDER_1" && len(oc.Items) == 1 && oc.Items[0].Name == "Linen Shirt"
		})).Return(nil).Once()
		var calls atomic.Int32
		s := newTestService(t, txs, verifySuccess(&calls), mailer)

		_, err := s.ConfirmOrder(context.Background(), "tx_1")
		require.NoError(t, err)
		_, err = s.HandleSuccess(context.Background(), successFor("tx_1"))
		require.NoError(t, err)
	})

	t.Run("failure does not fail the confirmation", func(t *testing.T) {
		txs := newMemTransactions(pendingTx("tx_1"))
		mailer := mocks.NewMailer(t)
		mailer.On("SendOrderConfirmation", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("sendgrid down")).Once()
		var calls atomic.Int32
		s := newTestService(t, txs, verifySuccess(&calls), mailer)

		resp, err := s.ConfirmOrder(context.Background(), "tx_1")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.OrderID)
		assert.Equal(t, 1, txs.orderCount())
	})
}

func TestCompleteConflictReadsExistingOrder(t *testing.T) {
	txs := mocks.NewTransactions(t)
	txs.On("CompleteTransaction", mock.Anything, "tx_1", mock.Anything).Return(nil, gerr.TransactionConflict).Once()
	done := pendingTx("tx_1")
	done.Status = entity.TransactionSucceeded
	done.OrderID = "order_9"
	txs.On("GetTransactionByReference", mock.Anything, "tx_1").Return(&done, nil).Once()

	repo := mocks.NewRepository(t)
	repo.On("Transactions").Return(txs)
	s, err := New(nil, repo, &stubProvider{}, nil)
	require.NoError(t, err)

	comp, err := s.HandleSuccess(context.Background(), successFor("tx_1"))
	require.NoError(t, err)
	assert.Equal(t, "order_9", comp.OrderID)
	assert.False(t, comp.Created)
}

func TestHandleFailure(t *testing.T) {
	txs := newMemTransactions(pendingTx("tx_1"), pendingTx("tx_2"))
	var calls atomic.Int32
	s := newTestService(t, txs, verifySuccess(&calls), nil)

	require.NoError(t, s.HandleFailure(context.Background(), &entity.ProviderPayment{Reference: "tx_1"}, "card declined"))
	assert.Equal(t, entity.TransactionFailed, txs.status("tx_1"))

	_, err := s.HandleSuccess(context.Background(), successFor("tx_1"))
	assert.ErrorIs(t, err, gerr.TransactionFailed)

	_, err = s.HandleSuccess(context.Background(), successFor("tx_2"))
	require.NoError(t, err)
	require.NoError(t, s.HandleFailure(context.Background(), &entity.ProviderPayment{Reference: "tx_2"}, "late failure"))
	assert.Equal(t, entity.TransactionSucceeded, txs.status("tx_2"))
}

func TestReconcilePending(t *testing.T) {
	statuses := map[string]entity.ProviderPaymentStatus{
		"tx_paid":      entity.ProviderPaymentSuccess,
		"tx_abandoned": entity.ProviderPaymentAbandoned,
		"tx_waiting":   entity.ProviderPaymentPending,
	}
	provider := &stubProvider{verify: func(ctx context.Context, tx *entity.Transaction) (*entity.ProviderPayment, error) {
		p := successFor(tx.Reference)
		p.Status = statuses[tx.Reference]
		return p, nil
	}}
	txs := newMemTransactions(pendingTx("tx_paid"), pendingTx("tx_abandoned"), pendingTx("tx_waiting"))
	s := newTestService(t, txs, provider, nil)

	for _, tc := range []struct {
		ref     string
		expired bool
		want    Outcome
		status  entity.TransactionStatus
	}{
		{ref: "tx_paid", want: OutcomeCompleted, status: entity.TransactionSucceeded},
		{ref: "tx_abandoned", expired: false, want: OutcomePending, status: entity.TransactionPending},
		{ref: "tx_abandoned", expired: true, want: OutcomeFailed, status: entity.TransactionFailed},
		{ref: "tx_waiting", expired: true, want: OutcomePending, status: entity.TransactionPending},
	} {
		tx, err := txs.GetTransactionByReference(context.Background(), tc.ref)
		require.NoError(t, err)
		got, err := s.ReconcilePending(context.Background(), tx, tc.expired)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.ref)
		assert.Equal(t, tc.status, txs.status(tc.ref), tc.ref)
	}
}

func TestKeyLockReleases(t *testing.T) {
	kl := newKeyLock()
	unlock := kl.Lock("tx_1")
	assert.Equal(t, 1, kl.size())

	acquired := make(chan struct{})
	go func() {
		u := kl.Lock("tx_1")
		close(acquired)
		u()
	}()
	unlock()
	<-acquired
	assert.Eventually(t, func() bool { return kl.size() == 0 }, time.Second, time.Millisecond)
}
