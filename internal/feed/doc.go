// Package feed downloads iCalendar subscriptions over HTTP.
//
// webcal:// subscription links are fetched over https. Every request is
// bounded by the client timeout, and any transport error or non-200 status
// is returned to the caller, which decides whether to skip the source.
package feed
