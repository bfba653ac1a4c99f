// Package userblock holds the append-only log of account blocks issued by
// super users.
package userblock
