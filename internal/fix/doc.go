// Package fix stores migrated sources, either next to the input with a
// suffix or over the input itself, and summarizes what an apply run did.
package fix
