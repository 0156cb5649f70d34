package rawcookie

import "errors"

// ErrMalformed is returned by Parse when the cookie-pair is missing or its
// name is empty.
var ErrMalformed = errors.New("rawcookie: malformed cookie")

// ErrInvalidOperation is returned when a mutation would violate the cookie
// structure, such as removing the mandatory name or value field.
var ErrInvalidOperation = errors.New("rawcookie: invalid operation")

// ErrNotFound is returned by Jar.Get when no cookie with the given name is
// stored.
var ErrNotFound = errors.New("rawcookie: cookie not found")

// ErrNoSealPassword is returned when neither the environment override nor
// the OS keyring yields a sealing password.
var ErrNoSealPassword = errors.New("rawcookie: no seal password available")
