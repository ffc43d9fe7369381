package repository

import "errors"

// ErrNotFound se devuelve cuando una clave o id no existe en el store.
var ErrNotFound = errors.New("record not found")
