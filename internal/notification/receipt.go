package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"digital-storefront/internal/client"
	"digital-storefront/internal/money"
)

type Receipt struct {
	BuyerEmail             string
	OrderID                string
	OrderCreatedAt         time.Time
	PricePaidInCents       int64
	ProductName            string
	ProductDescription     string
	ProductImagePath       string
	DownloadVerificationID string
}

type ReceiptSender interface {
	SendReceipt(ctx context.Context, receipt *Receipt) error
}

type receiptSenderImpl struct {
	emailClient client.EmailClient
	baseURL     string
}

func NewReceiptSender(emailClient client.EmailClient, baseURL string) ReceiptSender {
	return &receiptSenderImpl{
		emailClient: emailClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

func (s *receiptSenderImpl) SendReceipt(ctx context.Context, receipt *Receipt) error {
	html, err := s.render(receipt)
	if err != nil {
		return err
	}

	return s.emailClient.Send(ctx, &client.Email{
		To:      receipt.BuyerEmail,
		Subject: "Order Confirmation",
		HTML:    html,
	})
}

func (s *receiptSenderImpl) render(receipt *Receipt) (string, error) {
	var buf bytes.Buffer
	err := receiptTemplate.Execute(&buf, map[string]interface{}{
		"ProductName":        receipt.ProductName,
		"ProductDescription": receipt.ProductDescription,
		"ImageURL":           s.baseURL + receipt.ProductImagePath,
		"OrderID":            receipt.OrderID,
		"PurchasedOn":        receipt.OrderCreatedAt.Format("January 2, 2006"),
		"PricePaid":          money.FormatCents(receipt.PricePaidInCents),
		"DownloadURL":        DownloadURL(s.baseURL, receipt.DownloadVerificationID),
	})
	if err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}

// DownloadURL builds the public link for a download verification.
func DownloadURL(baseURL, downloadVerificationID string) string {
	return strings.TrimRight(baseURL, "/") + "/products/download/" + downloadVerificationID
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Purchase Receipt</title></head>
<body style="font-family: sans-serif; background: #ffffff;">
	<div style="max-width: 576px; margin: 0 auto;">
		<h1>Purchase Receipt</h1>
		<table>
			<tr><td>Order ID</td><td>{{.OrderID}}</td></tr>
			<tr><td>Purchased On</td><td>{{.PurchasedOn}}</td></tr>
			<tr><td>Price Paid</td><td>{{.PricePaid}}</td></tr>
		</table>
		<img src="{{.ImageURL}}" alt="{{.ProductName}}" style="width: 100%;">
		<h2>{{.ProductName}}</h2>
		<p>{{.ProductDescription}}</p>
		<a href="{{.DownloadURL}}">Download</a>
	</div>
</body>
</html>
`))
