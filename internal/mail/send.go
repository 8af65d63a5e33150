package mail

import (
	"context"
	"fmt"

	"github.com/jekabolt/storefront-ledger/internal/dto"
)

const OrderConfirmed = "order_confirmed.gohtml"

// OrderConfirmationSubject is the subject line of the confirmation email.
func OrderConfirmationSubject(orderNumber string) string {
	return fmt.Sprintf("Order Confirmation - #%s", orderNumber)
}

// SendOrderConfirmation queues and sends an order confirmation email.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, to string, orderDetails *dto.OrderConfirmed) error {
	if to == "" {
		return fmt.Errorf("recipient is required")
	}
	if orderDetails == nil || orderDetails.OrderID == "" {
		return fmt.Errorf("incomplete order details: %+v", orderDetails)
	}
	if orderDetails.Preheader == "" {
		orderDetails.Preheader = "Thank you for your order"
	}
	ser, err := m.render(to, OrderConfirmationSubject(orderDetails.OrderNumber), OrderConfirmed, orderDetails)
	if err != nil {
		return err
	}
	return m.sendWithInsert(ctx, ser)
}
