// Package api is the read and trigger HTTP surface served by "tingsync serve".
//
// Routes:
//
//	GET  /api/representatives        list representatives (?limit=&offset=)
//	GET  /api/representatives/{id}   one representative
//	GET  /api/cases                  list cases (?limit=&offset=)
//	GET  /api/cases/{id}             one case
//	POST /api/sync                   run a round if due (?force=true ignores the watermark)
//	GET  /api/sync/status            watermark, interval and latest run per source
//	GET  /healthz                    liveness
package api
