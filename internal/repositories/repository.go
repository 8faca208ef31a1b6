package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const mysqlDuplicateEntry = 1062

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// patch collects SET clauses for PATCH-style updates.
type patch struct {
	sets []string
	args []any
}

func (p *patch) set(col string, v any) {
	p.sets = append(p.sets, col+"=?")
	p.args = append(p.args, v)
}

func (p *patch) empty() bool { return len(p.sets) == 0 }
