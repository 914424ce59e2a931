// Package scraper fetches pages from baseball-reference.com.
//
// The Client sends a descriptive User-Agent, paces requests with a token
// bucket because the site blocks clients that exceed its request budget, and
// returns the raw page bytes. Retrying is left to the caller.
package scraper
