// Package cli is the interactive terminal front end.
//
// Screens are grouped like the routes they stand for: the auth group (login,
// register) is reachable only while signed out, the tabs group (home,
// profile) only while signed in. Before every prompt the navigator asks the
// route gate where the user may be and moves them there; while the stored
// session is still loading it shows a placeholder and moves nowhere.
//
// A background watcher pings the backend and the prompt shows whether it is
// online. App.Run blocks until the user exits or stdin is closed.
package cli
