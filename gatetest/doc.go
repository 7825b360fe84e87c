// Package gatetest provides test doubles and helpers for exercising the
// gate package: random identities, a scripted dispatcher and an event
// capturing sink.
package gatetest
