// Package api hosts the HTTP server, middleware, and page handlers for the
// movie catalog. Notable routes:
//   - GET /movie_list, /add, /edit/{id}, /delete/{id}, /top10 for the catalog pages.
//   - POST /add and /edit/{id} for form submissions.
//   - POST /webhook for authenticated repository syncs, when configured.
//   - GET /healthz / readyz for probes and GET /metrics for Prometheus scraping.
package api
