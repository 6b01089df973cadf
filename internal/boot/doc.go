// Package boot runs the container boot sequence once, strictly in order:
// install the config file, patch settings from the value source, apply ini
// overrides, check the database, fix ownership, make sure the data directory
// exists and finally hand off to the supervisor.
//
// Every step is fatal: the first error stops the sequence and is returned
// to the caller, nothing is retried or rolled back.
package boot
