// Package platformsdk is a typed client for the boutique platform API:
// orders, inventory, employees and customers.
//
// Money amounts are shopspring/decimal values so totals never pick up
// float rounding. Orders are created with an Idempotency-Key header.
//
// SyncInventory keeps an RFC 3339 watermark under the
// "inventory_last_sync" key of the client's TokenStore and only fetches
// items changed since then.
package platformsdk
