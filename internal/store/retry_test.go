package store

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsRetryableMySQLErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadlock", &mysql.MySQLError{Number: errDeadlock, Message: "deadlock"}, true},
		{"lock wait timeout", &mysql.MySQLError{Number: errLockWaitTimeout, Message: "lock wait timeout"}, true},
		{"syntax error", &mysql.MySQLError{Number: 1064, Message: "syntax"}, false},
		{"context canceled", context.Canceled, false},
		{"generic connection error", errors.New("connection reset by peer"), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isRetryable(c.err); got != c.want {
				t.Errorf("isRetryable(%v) = %v, want %v", c.err, got, c.want)
			}
		})
	}
}
