// Package adblock decides whether an outbound request targets a known
// advertising or tracking host.
//
// A host is blocked when any blocklist entry appears anywhere inside it,
// which also matches unrelated hosts that merely contain an entry
// ("notdoubleclick.network" is blocked by "doubleclick.net"). The loose
// match is kept on purpose for parity with the shipped shell.
package adblock
