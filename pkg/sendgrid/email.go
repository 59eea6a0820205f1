package sendgrid

import (
	"context"
	"fmt"
	"strings"

	"github.com/dfquintero/sportstore-gateway/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) *EmailService {
	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendOrderConfirmation emails the simulated order summary to the customer.
func (e *EmailService) SendOrderConfirmation(_ context.Context, order *models.OrderConfirmation) error {
	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail(order.Customer, order.Email)

	subject := fmt.Sprintf("Confirmación de pedido %s", order.OrderNumber)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", plainBody(order)))

	response, err := e.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

func plainBody(order *models.OrderConfirmation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Pedido %s\n\n", order.OrderNumber)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%s (%s, %s) x%d = $%.0f\n",
			item.Product.Name, item.Variant.Color, item.Variant.Size,
			item.Quantity, item.Variant.SalePrice*float64(item.Quantity))
	}

	fmt.Fprintf(&b, "\nSubtotal: $%.0f\n", order.Subtotal)

	if order.Shipping == 0 {
		b.WriteString("Envío: GRATIS\n")
	} else {
		fmt.Fprintf(&b, "Envío: $%.0f\n", order.Shipping)
	}

	fmt.Fprintf(&b, "Total: $%.0f\n\nEnviaremos tu pedido a %s, %s.\n",
		order.Total, order.Address, order.City)

	return b.String()
}
