// Package mariadb builds unidb executors for MariaDB and MySQL.
//
// Connections are opened through GORM's mysql dialector and driven with sqlx.
// Inserts report the driver's LastInsertId. Text columns, which the driver
// delivers as bytes, come back as strings in the resulting records.
package mariadb
