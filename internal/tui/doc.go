// Package tui provides the terminal user interface for programctl.
//
// The interface is a Bubble Tea program with three screens:
//
//   - List: one page of Programs, the target of every Back action
//   - Detail: a single Program, read-only, with cover export
//   - Form: create a Program, or edit one when opened with an id
//
// App holds the current Route and the active screen. Screens never keep
// their own copy of the data: they read the store on every render and
// start actions through tea.Cmds. App subscribes to the store and forwards
// each change to the active screen, which is how a screen learns that a
// fetch has landed or a save has succeeded.
//
// Warnings and errors logged while the program runs show up in the status
// bar, drained from the logging channel returned by logging.InitForTUI.
package tui
