// Package app holds the editor's session state.
//
// A frame consumes one input.Event: Dispatch turns it into an Action
// without touching state, and State.Apply performs the action against the
// buffer, cursor and view transform. The frontend then renders from the
// State's accessors.
package app
