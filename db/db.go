package db

import (
	"minitrack/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Init opens the relational connection pool. MySQL is used when MYSQL_DSN is
// configured, SQLite otherwise. The returned handle is passed to the store
// layer which never manages the pool lifecycle itself.
func Init() *gorm.DB {
	var dialector gorm.Dialector
	if config.MYSQL_DSN != "" {
		dialector = mysql.Open(config.MYSQL_DSN)
	} else {
		dialector = sqlite.Open(config.SQLITE_FILE)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil || db == nil {
		panic(err)
	}
	return db
}
