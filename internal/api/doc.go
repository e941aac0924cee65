// Package api hosts the HTTP server, middleware, and REST handlers for
// operator access. Notable routes:
//   - GET /healthz / readyz for Kubernetes probes.
//   - GET /metrics for Prometheus scraping.
//   - POST /v1/seo/opportunity for the content-opportunity report.
//   - POST /v1/ads/intel for the ad-intelligence report.
package api
