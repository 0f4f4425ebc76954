// Package program defines the Program entity exchanged with the backend.
//
// A Program is a plain data shape: JSON wire tags, the empty default shape,
// the body cleaning applied before writes, and the field rules the
// create/edit form enforces (see Validate). The binary cover travels as
// base64 on the wire and is held decoded in memory.
package program
