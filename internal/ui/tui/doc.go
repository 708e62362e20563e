// Package tui is the terminal kiosk shell. It renders the page the
// correlator last navigated to and turns key presses into correlator
// commands. Navigation and popups arrive as messages on the bubbletea event
// loop, so widget state is only ever touched from that loop.
package tui
