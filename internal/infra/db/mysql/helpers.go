package mysql

import (
	"errors"
	"time"

	driver "github.com/go-sql-driver/mysql"
)

const errDuplicateEntry = 1062

// isDuplicate reports a unique key violation
func isDuplicate(err error) bool {
	var myErr *driver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errDuplicateEntry
}

// nowIfZero fills an unset timestamp
func nowIfZero(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
