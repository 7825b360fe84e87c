/*

Package quorum defines the types shared throughout the repository: opaque
actor identities, value amounts, and the structured events published by the
authorization gate together with the sinks that consume them.
The actual authorization logic lives in the gate package; test doubles and
helpers are provided by the gatetest package.

*/

package quorum
