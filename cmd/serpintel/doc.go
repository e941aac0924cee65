// Package main hosts the SERP intelligence service entrypoint.
//
// Architecture overview:
//   - HTTP API: internal/api.Server exposes health, metrics, and the two report
//     endpoints. Requests are validated, the market is parsed with a configured
//     default, and report construction is delegated to the intel service.
//   - Fetch pipeline: internal/serpapi fetches raw provider payloads per market;
//     the ad flow probes a deduplicated plan list (keyword plus localized
//     commercial-intent variants, home market before US) strictly in order and
//     short-circuits on the first plan yielding ad inventory.
//   - Normalization & scoring: internal/normalize tolerates arbitrarily sparse
//     payloads; internal/classify labels organic results and ad landing pages;
//     internal/scoring computes the clamped opportunity and competition scores
//     with human-readable reasons, SERP format detection, and recurring ad
//     message buckets.
//   - Insights: internal/insights always builds a rule-based narrative first,
//     then optionally overlays an OpenAI completion merged field by field; a
//     populated fallback field is never replaced with nothing, and a missing
//     API key disables the overlay without affecting report availability.
//   - Configuration & plumbing: Viper populates config from env/files
//     (SERPINTEL_ prefix, optional .env via godotenv); zap provides structured
//     logging; Prometheus metrics are exported via the metrics middleware and
//     /metrics handler. The service is stateless across requests, suitable for
//     Cloud Run scale-out.
//
// Operational notes:
//   - Every upstream call carries an explicit timeout; ad-plan probing is
//     sequential to bound provider quota usage.
//   - Shutdown is coordinated via signal.NotifyContext; the HTTP server drains
//     with a 10s budget on SIGTERM.
//
// Quick checklist:
//   - Configure env vars: SERPINTEL_SERVER_PORT, SERPINTEL_SEARCH_API_KEY
//     (required), SERPINTEL_SEARCH_DEFAULT_MARKET, SERPINTEL_OPENAI_API_KEY
//     (optional, enables the AI overlay), SERPINTEL_AUTH_ENABLED and
//     SERPINTEL_AUTH_API_KEY for keyed access.
//   - Run locally: go run ./cmd/serpintel -config config.yaml (or rely solely
//     on env overrides).
package main
