// Package cli implements the interactive surface of the sociallog CLI: an
// App wiring config, services, the local store and the image lazy-loader,
// plus a small REPL dispatching user commands.
//
// User-visible alerts keep the Thai wording of the internal tool; anything
// aimed at operators (logs) is English.
package cli
