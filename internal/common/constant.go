// Package common contains shared constants and sentinel errors used across
// homeledger components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Table names shared by the client queue, the reconciliation engine and the
// server repositories. The durable queue orders mutations per table, so the
// two sides must agree on these values.
const (
	TableExpenses  = "expenses"
	TableReminders = "reminders"
)
