package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_webhook_events_total",
			Help: "Stripe webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)

	OrdersRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_recorded_total",
			Help: "Orders written by the webhook ingestor",
		},
	)

	CredentialsMinted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_download_credentials_minted_total",
			Help: "Download verifications created, by origin",
		},
		[]string{"origin"},
	)

	Downloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_downloads_total",
			Help: "Download attempts by outcome",
		},
		[]string{"outcome"},
	)

	ReceiptEmailFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_receipt_email_failures_total",
			Help: "Receipt emails that failed to send",
		},
	)
)

func Register(registerer prometheus.Registerer) {
	registerer.MustRegister(
		WebhookEvents,
		OrdersRecorded,
		CredentialsMinted,
		Downloads,
		ReceiptEmailFailures,
	)
}
