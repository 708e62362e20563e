// Package adms receives push notifications from an ADMS-capable biometric
// terminal and turns ATTLOG lines into identity events.
//
// The terminal firmware treats anything other than a 200 "OK" as a fault and
// retries aggressively, so every route, including unknown ones, answers
// "OK". The listener stays bound for the life of the process; Stop only
// deafens it, after which pushes are acknowledged and discarded.
package adms
