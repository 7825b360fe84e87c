/*
The gate package implements an N-of-M authorization gate over a pooled
balance: a fixed set of owners jointly approves queued actions before they
execute.

A Registry holds the immutable owner set and the confirmation threshold. A
Ledger keeps the append-only list of submitted actions together with the
per-owner confirmation sets. The Gate checks the quorum and performs the
external dispatch exactly once per entry, committing the executed mark
before the external call and rolling it back if the dispatch fails. A Pool
records incoming deposits and funds successful dispatches.

Caller identities arrive already authenticated; this package performs no
authentication of its own.
*/
package gate
