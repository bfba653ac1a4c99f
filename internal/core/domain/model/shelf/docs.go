// Package shelf records where parcels awaiting pickup were shelved.
package shelf
