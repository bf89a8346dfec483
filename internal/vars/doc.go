// Package vars holds the numeric variables shared by running scripts.
//
// Variables live in one of three scopes. Unprefixed names belong to the
// object that set them, "area." names to the whole area, "person." names
// to individual people. Reading an absent variable yields zero in every
// scope, so scripts never fail on a name that was not written yet.
package vars
