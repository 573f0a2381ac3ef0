package sqlstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Поддерживаемые драйверы
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// dialect описывает различия между СУБД
type dialect struct {
	isUniqueViolation func(error) bool
	name              string // имя database/sql драйвера и каталога миграций
	goose             string // имя диалекта goose
	numbered          bool   // плейсхолдеры $1, $2, ... вместо ?
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite, "":
		return dialect{
			name:              DriverSQLite,
			goose:             "sqlite3",
			isUniqueViolation: sqliteUniqueViolation,
		}, nil
	case DriverMySQL:
		return dialect{
			name:              DriverMySQL,
			goose:             "mysql",
			isUniqueViolation: mysqlUniqueViolation,
		}, nil
	case DriverPostgres:
		return dialect{
			name:              DriverPostgres,
			goose:             "postgres",
			numbered:          true,
			isUniqueViolation: postgresUniqueViolation,
		}, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// rebind переписывает ? в $n для postgres
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sqliteUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func mysqlUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func postgresUniqueViolation(err error) bool {
	var pe *pq.Error
	return errors.As(err, &pe) && pe.Code == "23505"
}
